package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Requisicoes registra método, caminho, status e duração de cada requisição.
// Deve ficar depois do middleware.RequestID para levar o id junto.
func Requisicoes(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inicio := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := log.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"metodo":     r.Method,
				"caminho":    r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"duracao_ms": time.Since(inicio).Milliseconds(),
				"ip":         r.RemoteAddr,
			})
			switch {
			case status >= 500:
				entry.Error("requisição com erro")
			case status >= 400:
				entry.Warn("requisição rejeitada")
			default:
				entry.Info("requisição atendida")
			}
		})
	}
}
