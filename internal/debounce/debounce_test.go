package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inicio = time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

func TestRajadaViraUmaChamada(t *testing.T) {
	r := NovoManual(inicio)
	d := New(500*time.Millisecond, r)

	var valores []string
	for _, v := range []string{"E", "EX", "EXT", "EXT-1"} {
		d.Agendar("7:numero_extrato", func() { valores = append(valores, v) })
		r.Avancar(200 * time.Millisecond)
	}
	assert.Empty(t, valores)

	r.Avancar(300 * time.Millisecond)
	assert.Equal(t, []string{"EXT-1"}, valores)
	assert.Zero(t, d.Pendentes())
}

func TestChavesIndependentes(t *testing.T) {
	r := NovoManual(inicio)
	d := New(500*time.Millisecond, r)

	var ordem []string
	d.Agendar("a", func() { ordem = append(ordem, "a") })
	r.Avancar(100 * time.Millisecond)
	d.Agendar("b", func() { ordem = append(ordem, "b") })
	assert.Equal(t, 2, d.Pendentes())

	r.Avancar(time.Second)
	assert.Equal(t, []string{"a", "b"}, ordem)
}

func TestCancelar(t *testing.T) {
	r := NovoManual(inicio)
	d := New(time.Second, r)

	chamou := false
	d.Agendar("x", func() { chamou = true })
	assert.True(t, d.Cancelar("x"))
	assert.False(t, d.Cancelar("nao-existe"))
	r.Avancar(2 * time.Second)
	assert.False(t, chamou)
}

func TestPararRecusaNovos(t *testing.T) {
	r := NovoManual(inicio)
	d := New(time.Second, r)

	chamou := false
	require.True(t, d.Agendar("x", func() { chamou = true }))
	d.Parar()
	assert.False(t, d.Agendar("y", func() { chamou = true }))
	r.Avancar(5 * time.Second)
	assert.False(t, chamou)
	assert.Zero(t, r.Pendentes())
}

// Um timer que já venceu mas ainda não pegou o lock não pode rodar
// depois de ter sido substituído.
func TestTimerAntigoIgnorado(t *testing.T) {
	d := New(time.Second, NovoManual(inicio))
	var n int
	d.Agendar("x", func() { n++ })
	antiga := d.timers["x"].geracao
	d.Agendar("x", func() { n += 10 })

	d.disparar("x", antiga, func() { n += 100 })
	assert.Zero(t, n)
}

func TestRelogioReal(t *testing.T) {
	d := New(20*time.Millisecond, nil)
	var n atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)
	for i := 0; i < 5; i++ {
		d.Agendar("x", func() {
			n.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), n.Load())
}
