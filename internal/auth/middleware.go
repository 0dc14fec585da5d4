package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/corretora/sistema-comissoes/internal/utils"
)

type ctxKey string

const (
	CtxUserID  ctxKey = "usuarioID"
	CtxIsAdmin ctxKey = "isAdmin"
)

// Middleware exige "Authorization: Bearer <access>" nas rotas protegidas.
func (e *Emissor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			utils.WriteDetalhe(w, http.StatusUnauthorized, "As credenciais de autenticação não foram fornecidas.")
			return
		}
		claims, err := e.Validar(strings.TrimPrefix(h, "Bearer "), TipoAccess)
		if err != nil {
			utils.WriteDetalhe(w, http.StatusUnauthorized, "Token inválido ou expirado.")
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UsuarioID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUserID).(uint)
	return id, ok
}
