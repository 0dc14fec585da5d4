package debounce

import (
	"sort"
	"sync"
	"time"
)

// Timer é o subconjunto de *time.Timer usado aqui.
type Timer interface {
	Stop() bool
}

// Relogio permite trocar o tempo real por um controlado nos testes.
type Relogio interface {
	Agora() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type relogioReal struct{}

// Real usa time.Now e time.AfterFunc.
var Real Relogio = relogioReal{}

func (relogioReal) Agora() time.Time { return time.Now() }

func (relogioReal) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Manual só avança quando Avancar é chamado. Os callbacks vencidos rodam
// na goroutine de quem chamou Avancar, em ordem de vencimento.
type Manual struct {
	mu     sync.Mutex
	agora  time.Time
	seq    int
	timers []*timerManual
}

type timerManual struct {
	dono  *Manual
	vence time.Time
	seq   int
	f     func()
	ativo bool
}

func NovoManual(inicio time.Time) *Manual {
	return &Manual{agora: inicio}
}

func (m *Manual) Agora() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.agora
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &timerManual{dono: m, vence: m.agora.Add(d), seq: m.seq, f: f, ativo: true}
	m.timers = append(m.timers, t)
	return t
}

func (t *timerManual) Stop() bool {
	t.dono.mu.Lock()
	defer t.dono.mu.Unlock()
	ativo := t.ativo
	t.ativo = false
	return ativo
}

// Pendentes conta os timers ainda não disparados nem parados.
func (m *Manual) Pendentes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if t.ativo {
			n++
		}
	}
	return n
}

// Avancar move o relógio e dispara o que venceu.
func (m *Manual) Avancar(d time.Duration) {
	m.mu.Lock()
	m.agora = m.agora.Add(d)
	var vencidos, restantes []*timerManual
	for _, t := range m.timers {
		switch {
		case !t.ativo:
		case !t.vence.After(m.agora):
			t.ativo = false
			vencidos = append(vencidos, t)
		default:
			restantes = append(restantes, t)
		}
	}
	m.timers = restantes
	m.mu.Unlock()

	sort.SliceStable(vencidos, func(i, j int) bool {
		if vencidos[i].vence.Equal(vencidos[j].vence) {
			return vencidos[i].seq < vencidos[j].seq
		}
		return vencidos[i].vence.Before(vencidos[j].vence)
	})
	for _, t := range vencidos {
		t.f()
	}
}
