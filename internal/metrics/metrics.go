package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metricas agrupa os coletores da API em um registry próprio.
type Metricas struct {
	registry     *prometheus.Registry
	requisicoes  *prometheus.CounterVec
	duracao      *prometheus.HistogramVec
	recebimentos *prometheus.CounterVec
}

func New() *Metricas {
	m := &Metricas{
		registry: prometheus.NewRegistry(),
		requisicoes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "comissoes_http_requests_total",
				Help: "Requisições HTTP atendidas, por rota, método e status.",
			},
			[]string{"rota", "metodo", "status"},
		),
		duracao: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "comissoes_http_request_duration_seconds",
				Help:    "Duração das requisições HTTP em segundos.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"rota", "metodo"},
		),
		recebimentos: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "comissoes_recebimento_transicoes_total",
				Help: "Mudanças de status de parcelas de comissão.",
			},
			[]string{"de", "para"},
		),
	}
	m.registry.MustRegister(
		m.requisicoes, m.duracao, m.recebimentos,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware mede cada requisição usando o template da rota do mux,
// para que /api/venda/1/ e /api/venda/2/ caiam na mesma série.
func (m *Metricas) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inicio := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		rota := "desconhecida"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				rota = tpl
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requisicoes.WithLabelValues(rota, r.Method, strconv.Itoa(status)).Inc()
		m.duracao.WithLabelValues(rota, r.Method).Observe(time.Since(inicio).Seconds())
	})
}

// ObservarRecebimento conta a transição de status de uma parcela.
func (m *Metricas) ObservarRecebimento(de, para string) {
	if m == nil || de == para {
		return
	}
	m.recebimentos.WithLabelValues(de, para).Inc()
}

func (m *Metricas) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
