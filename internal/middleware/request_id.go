package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID é o cabeçalho que carrega o identificador da requisição.
const HeaderRequestID = "X-Request-Id"

var requestIDContextKey = contextKey("request_id")

// NewRequestIDMiddleware retorna o middleware que atribui um
// identificador único a cada requisição. Um identificador já presente
// no cabeçalho de entrada é reaproveitado; caso contrário um UUID novo
// é gerado. O identificador vai para o contexto e para a resposta.
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(HeaderRequestID, requestID)
			ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDDoContexto retorna o identificador da requisição, ou vazio
// quando o middleware não rodou.
func RequestIDDoContexto(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
