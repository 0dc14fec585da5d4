// Package debounce agrupa chamadas repetidas: só a última de cada rajada
// é executada, depois de um período sem novas chamadas.
package debounce

import (
	"sync"
	"time"
)

type agendamento struct {
	timer   Timer
	geracao uint64
}

// Debouncer mantém um timer por chave. É seguro para uso concorrente.
type Debouncer struct {
	mu      sync.Mutex
	atraso  time.Duration
	relogio Relogio
	timers  map[string]agendamento
	geracao uint64
	parado  bool
}

func New(atraso time.Duration, relogio Relogio) *Debouncer {
	if relogio == nil {
		relogio = Real
	}
	return &Debouncer{atraso: atraso, relogio: relogio, timers: make(map[string]agendamento)}
}

// Agendar (re)inicia o timer da chave; fn roda quando a chave ficar
// quieta pelo atraso configurado. Retorna false depois de Parar.
func (d *Debouncer) Agendar(chave string, fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.parado {
		return false
	}
	if a, ok := d.timers[chave]; ok {
		a.timer.Stop()
	}
	d.geracao++
	g := d.geracao
	t := d.relogio.AfterFunc(d.atraso, func() { d.disparar(chave, g, fn) })
	d.timers[chave] = agendamento{timer: t, geracao: g}
	return true
}

// disparar ignora timers substituídos ou cancelados que já estavam
// vencendo quando Stop foi chamado.
func (d *Debouncer) disparar(chave string, g uint64, fn func()) {
	d.mu.Lock()
	a, ok := d.timers[chave]
	if d.parado || !ok || a.geracao != g {
		d.mu.Unlock()
		return
	}
	delete(d.timers, chave)
	d.mu.Unlock()
	fn()
}

// Cancelar descarta o agendamento da chave; retorna true se havia um pendente.
func (d *Debouncer) Cancelar(chave string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.timers[chave]
	if ok {
		a.timer.Stop()
		delete(d.timers, chave)
	}
	return ok
}

// Parar cancela tudo e recusa novos agendamentos.
func (d *Debouncer) Parar() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parado = true
	for chave, a := range d.timers {
		a.timer.Stop()
		delete(d.timers, chave)
	}
}

func (d *Debouncer) Pendentes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}
