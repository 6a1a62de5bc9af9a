// Package middleware provê os middlewares HTTP da aplicação.
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/session"
)

// NomeCookieSessao é o nome do cookie HTTP Only que carrega o token
// de sessão.
const NomeCookieSessao = "sessao_id"

// contextKey é o tipo das chaves de contexto do pacote.
type contextKey string

var sessaoContextKey = contextKey("sessao")

// NewAnexarSessaoMiddleware lê o cookie de sessão e, quando o token é
// válido, injeta os dados da sessão no contexto da requisição. Não
// rejeita requisições sem sessão; o bloqueio é responsabilidade de
// ExigirAutenticacao, aplicado apenas às rotas protegidas.
func NewAnexarSessaoMiddleware(sessoes session.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(NomeCookieSessao)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			dados, err := sessoes.Buscar(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("falha ao buscar sessão",
					slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if dados == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessaoContextKey, dados)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewExigirAutenticacao bloqueia requisições sem sessão válida no
// contexto, respondendo 401 no formato unificado de erro.
func NewExigirAutenticacao() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessaoDoContexto(r.Context()); !ok {
				apiErr := model.NovoErroNaoAutenticado()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"erro": apiErr.Message})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessaoDoContexto retorna os dados da sessão injetados pelo
// middleware, quando presentes.
func SessaoDoContexto(ctx context.Context) (*session.Dados, bool) {
	dados, ok := ctx.Value(sessaoContextKey).(*session.Dados)
	return dados, ok && dados != nil
}

// ContextoComSessao injeta os dados da sessão no contexto. Usado em
// testes e fora do caminho HTTP.
func ContextoComSessao(ctx context.Context, dados *session.Dados) context.Context {
	return context.WithValue(ctx, sessaoContextKey, dados)
}
