// Package painel mantém o estado do controle de recebimentos: vendas com
// suas parcelas, filtros, rascunhos de edição e as gravações adiadas.
//
// Todo o estado pertence a uma única goroutine (o loop). Os métodos
// públicos apenas enfileiram eventos; chamadas à API rodam fora do loop
// e devolvem o resultado como um novo evento.
package painel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/corretora/sistema-comissoes/internal/debounce"
	"github.com/corretora/sistema-comissoes/internal/models"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
	"github.com/corretora/sistema-comissoes/internal/venda"
)

const (
	MsgErroBuscar    = "Erro ao buscar vendas. Tente novamente mais tarde."
	MsgErroAtualizar = "Erro ao atualizar recebimento. Tente novamente mais tarde."
	MsgErroMarcar    = "Erro ao marcar parcela como recebida. Tente novamente mais tarde."
)

var (
	ErrEncerrado           = errors.New("painel encerrado")
	ErrParcelaDesconhecida = errors.New("parcela não está entre as vendas carregadas")
	ErrCampoInvalido       = errors.New("campo não editável")
)

// Fonte é o que o painel precisa da API.
type Fonte interface {
	Vendas(ctx context.Context) ([]venda.Venda, error)
	AtualizarRecebimento(ctx context.Context, id uint, campos map[string]any) (recebimento.ControleDeRecebimento, error)
}

// Campo editável de uma parcela.
type Campo string

const (
	CampoDataRecebimento Campo = "data_recebimento"
	CampoNumeroExtrato   Campo = "numero_extrato"
)

type chaveRascunho struct {
	id    uint
	campo Campo
}

func (c chaveRascunho) String() string { return fmt.Sprintf("%d:%s", c.id, c.campo) }

type Opcoes struct {
	DebounceEdicao time.Duration
	DebounceBusca  time.Duration
	// Timeout de cada chamada à API.
	Timeout time.Duration
	Relogio debounce.Relogio
	Log     *logrus.Logger
}

type estado struct {
	vendas        []venda.Venda
	carregando    bool
	erro          string
	buscaDigitada string
	filtro        venda.Filtro
	rascunhos     map[chaveRascunho]string
	abertas       map[uint]bool
	encerrado     bool
	// chamadas à API ainda sem resposta aplicada
	emVoo         int
	aguardando    []chan struct{}
}

type Engine struct {
	fonte   Fonte
	opc     Opcoes
	relogio debounce.Relogio
	log     *logrus.Logger
	edicao  *debounce.Debouncer
	busca   *debounce.Debouncer

	eventos  chan func()
	sair     chan struct{}
	terminou chan struct{}
	fechar   sync.Once

	// só acessado pelo loop
	st estado
}

// New inicia o loop. O filtro de status começa em "Em andamento".
func New(fonte Fonte, opc Opcoes) *Engine {
	if opc.DebounceEdicao <= 0 {
		opc.DebounceEdicao = 500 * time.Millisecond
	}
	if opc.DebounceBusca <= 0 {
		opc.DebounceBusca = 300 * time.Millisecond
	}
	if opc.Timeout <= 0 {
		opc.Timeout = 15 * time.Second
	}
	if opc.Relogio == nil {
		opc.Relogio = debounce.Real
	}
	if opc.Log == nil {
		opc.Log = logrus.StandardLogger()
	}
	e := &Engine{
		fonte:    fonte,
		opc:      opc,
		relogio:  opc.Relogio,
		log:      opc.Log,
		edicao:   debounce.New(opc.DebounceEdicao, opc.Relogio),
		busca:    debounce.New(opc.DebounceBusca, opc.Relogio),
		eventos:  make(chan func(), 64),
		sair:     make(chan struct{}),
		terminou: make(chan struct{}),
		st: estado{
			filtro:    venda.Filtro{Status: venda.EmAndamento},
			rascunhos: make(map[chaveRascunho]string),
			abertas:   make(map[uint]bool),
		},
	}
	go e.loop()
	return e
}

func (e *Engine) loop() {
	defer close(e.terminou)
	for {
		select {
		case ev := <-e.eventos:
			ev()
		case <-e.sair:
			return
		}
	}
}

// enviar entrega ev ao loop; devolve false depois de Fechar.
func (e *Engine) enviar(ev func()) bool {
	select {
	case <-e.sair:
		return false
	default:
	}
	select {
	case e.eventos <- ev:
		return true
	case <-e.sair:
		return false
	}
}

// consultar roda fn no loop e espera o resultado.
func consultar[T any](e *Engine, fn func() T) (T, bool) {
	resp := make(chan T, 1)
	if !e.enviar(func() { resp <- fn() }) {
		var zero T
		return zero, false
	}
	select {
	case v := <-resp:
		return v, true
	case <-e.terminou:
		var zero T
		return zero, false
	}
}

// chamar roda a chamada fora do loop e entrega o resultado como evento.
// Só pode ser usado de dentro do loop. Se o painel já tiver sido fechado
// a conclusão é descartada.
func (e *Engine) chamar(op func(ctx context.Context) func()) {
	e.st.emVoo++
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.opc.Timeout)
		defer cancel()
		concluir := op(ctx)
		e.enviar(func() {
			e.st.emVoo--
			if !e.st.encerrado {
				concluir()
			}
			if e.st.emVoo == 0 {
				for _, c := range e.st.aguardando {
					close(c)
				}
				e.st.aguardando = nil
			}
		})
	}()
}

// Carregar busca todas as vendas. Em caso de sucesso substitui a coleção
// inteira e limpa o erro; em caso de falha mantém o que já havia.
func (e *Engine) Carregar() {
	e.enviar(func() {
		e.st.carregando = true
		e.chamar(func(ctx context.Context) func() {
			vendas, err := e.fonte.Vendas(ctx)
			return func() {
				e.st.carregando = false
				if err != nil {
					e.log.WithError(err).Error("erro ao buscar vendas")
					e.st.erro = MsgErroBuscar
					return
				}
				e.st.vendas = vendas
				e.st.erro = ""
				e.descartarRascunhosOrfaos()
			}
		})
	})
}

// descartarRascunhosOrfaos remove rascunhos de parcelas que sumiram.
func (e *Engine) descartarRascunhosOrfaos() {
	ids := e.idsParcelas()
	for k := range e.st.rascunhos {
		if _, ok := ids[k.id]; !ok {
			delete(e.st.rascunhos, k)
			e.edicao.Cancelar(k.String())
		}
	}
}

func (e *Engine) idsParcelas() map[uint]recebimento.ControleDeRecebimento {
	ids := make(map[uint]recebimento.ControleDeRecebimento)
	for _, v := range e.st.vendas {
		for _, p := range v.ParcelasRecebimento {
			ids[p.ID] = p
		}
	}
	return ids
}

func (e *Engine) parcela(id uint) (recebimento.ControleDeRecebimento, bool) {
	for _, v := range e.st.vendas {
		for _, p := range v.ParcelasRecebimento {
			if p.ID == id {
				return p, true
			}
		}
	}
	return recebimento.ControleDeRecebimento{}, false
}

// DigitarBusca guarda o texto na hora; o filtro só muda após a pausa.
func (e *Engine) DigitarBusca(termo string) {
	e.enviar(func() {
		e.st.buscaDigitada = termo
		e.busca.Agendar("busca", func() {
			e.enviar(func() { e.st.filtro.Busca = termo })
		})
	})
}

// AplicarBusca muda o filtro sem esperar a pausa de digitação.
func (e *Engine) AplicarBusca(termo string) {
	e.enviar(func() {
		e.busca.Cancelar("busca")
		e.st.buscaDigitada = termo
		e.st.filtro.Busca = termo
	})
}

func (e *Engine) DefinirStatus(s venda.FiltroStatus) {
	e.enviar(func() { e.st.filtro.Status = s })
}

// DefinirPeriodo limita data_venda; nil deixa o limite aberto.
func (e *Engine) DefinirPeriodo(inicio, fim *models.Data) {
	e.enviar(func() {
		e.st.filtro.Inicio = inicio
		e.st.filtro.Fim = fim
	})
}

func (e *Engine) AlternarDetalhes(vendaID uint) {
	e.enviar(func() {
		if e.st.abertas[vendaID] {
			delete(e.st.abertas, vendaID)
			return
		}
		e.st.abertas[vendaID] = true
	})
}

// DispensarErro fecha o aviso de erro.
func (e *Engine) DispensarErro() {
	e.enviar(func() { e.st.erro = "" })
}

// EditarCampo atualiza o rascunho e agenda o PATCH do campo. Digitações
// seguidas no mesmo campo da mesma parcela viram uma única gravação,
// com o último valor.
func (e *Engine) EditarCampo(id uint, campo Campo, valor string) error {
	if campo != CampoDataRecebimento && campo != CampoNumeroExtrato {
		return fmt.Errorf("%w: %s", ErrCampoInvalido, campo)
	}
	err, ok := consultar(e, func() error {
		if _, ok := e.parcela(id); !ok {
			return fmt.Errorf("%w: %d", ErrParcelaDesconhecida, id)
		}
		k := chaveRascunho{id, campo}
		e.st.rascunhos[k] = valor
		e.edicao.Agendar(k.String(), func() {
			e.enviar(func() { e.gravarRascunho(k) })
		})
		return nil
	})
	if !ok {
		return ErrEncerrado
	}
	return err
}

func valorCampo(campo Campo, valor string) any {
	if campo == CampoDataRecebimento && valor == "" {
		return nil
	}
	return valor
}

func (e *Engine) gravarRascunho(k chaveRascunho) {
	valor, ok := e.st.rascunhos[k]
	if !ok {
		return
	}
	campos := map[string]any{string(k.campo): valorCampo(k.campo, valor)}
	enviados := map[chaveRascunho]string{k: valor}
	e.patch(k.id, campos, enviados, MsgErroAtualizar)
}

// MarcarRecebida muda o status para "Recebido". Se a parcela ainda não
// tem data de recebimento, envia junto o rascunho da data ou, sem
// rascunho, a data de hoje.
func (e *Engine) MarcarRecebida(id uint) error {
	err, ok := consultar(e, func() error {
		p, ok := e.parcela(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrParcelaDesconhecida, id)
		}
		campos := map[string]any{"status": models.StatusRecebido}
		enviados := map[chaveRascunho]string{}
		if p.DataRecebimento == nil || p.DataRecebimento.IsZero() {
			k := chaveRascunho{id, CampoDataRecebimento}
			data, temRascunho := e.st.rascunhos[k]
			if temRascunho {
				// o PATCH adiado da data não pode chegar depois e apagá-la
				e.edicao.Cancelar(k.String())
				enviados[k] = data
			}
			if data == "" {
				data = models.DataDe(e.relogio.Agora()).String()
			}
			campos[string(CampoDataRecebimento)] = data
		}
		e.patch(id, campos, enviados, MsgErroMarcar)
		return nil
	})
	if !ok {
		return ErrEncerrado
	}
	return err
}

// patch envia os campos e, no sucesso, mescla a resposta por id em todas
// as vendas. Rascunhos enviados só são descartados se não mudaram
// enquanto a requisição estava em voo.
func (e *Engine) patch(id uint, campos map[string]any, enviados map[chaveRascunho]string, msgErro string) {
	e.chamar(func(ctx context.Context) func() {
		atualizado, err := e.fonte.AtualizarRecebimento(ctx, id, campos)
		return func() {
			if err != nil {
				e.log.WithError(err).WithFields(logrus.Fields{
					"recebimento": id,
					"campos":      campos,
				}).Error("erro ao atualizar recebimento")
				e.st.erro = msgErro
				return
			}
			e.st.vendas, _ = venda.MesclarRecebimento(e.st.vendas, atualizado)
			for k, valor := range enviados {
				if atual, ok := e.st.rascunhos[k]; ok && atual == valor {
					delete(e.st.rascunhos, k)
				}
			}
			e.st.erro = ""
		}
	})
}

// GravarPendentes envia já as edições que ainda aguardavam a pausa.
func (e *Engine) GravarPendentes() {
	consultar(e, func() struct{} {
		for k := range e.st.rascunhos {
			if e.edicao.Cancelar(k.String()) {
				e.gravarRascunho(k)
			}
		}
		return struct{}{}
	})
}

// Visao monta a foto atual, com dias de atraso calculados agora.
func (e *Engine) Visao() Visao {
	v, ok := consultar(e, e.montarVisao)
	if !ok {
		return Visao{Encerrado: true}
	}
	return v
}

// Aguardar espera as chamadas em voo terminarem e serem aplicadas.
// Edições ainda na pausa do debounce não contam; use GravarPendentes antes.
func (e *Engine) Aguardar() {
	pronto, ok := consultar(e, func() chan struct{} {
		c := make(chan struct{})
		if e.st.emVoo == 0 {
			close(c)
			return c
		}
		e.st.aguardando = append(e.st.aguardando, c)
		return c
	})
	if !ok {
		return
	}
	select {
	case <-pronto:
	case <-e.terminou:
	}
}

// Fechar cancela as gravações agendadas e para o loop. Respostas que
// chegarem depois são ignoradas.
func (e *Engine) Fechar() {
	e.fechar.Do(func() {
		e.edicao.Parar()
		e.busca.Parar()
		consultar(e, func() struct{} {
			e.st.encerrado = true
			return struct{}{}
		})
		close(e.sair)
		<-e.terminou
	})
}
