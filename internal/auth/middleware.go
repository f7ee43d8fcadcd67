package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID ctxKey = "usuarioID"
	CtxPapel  ctxKey = "papel"
)

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxPapel, claims.Papel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		papel, _ := r.Context().Value(CtxPapel).(Papel)
		if !papel.EhAdmin() {
			http.Error(w, "Forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PapelDoContexto extrai o papel injetado pelo middleware.
func PapelDoContexto(ctx context.Context) Papel {
	p, _ := ctx.Value(CtxPapel).(Papel)
	return p
}

// UserIDDoContexto extrai o id do usuário injetado pelo middleware.
func UserIDDoContexto(ctx context.Context) uint {
	id, _ := ctx.Value(CtxUserID).(uint)
	return id
}
