package handler

import (
	"context"
	"net/http"
)

// Home descreve a API e as rotas disponíveis.
// GET /
func Home(w http.ResponseWriter, r *http.Request) {
	escreverJSON(w, http.StatusOK, map[string]any{
		"mensagem": "API de micro-blog",
		"rotas": map[string]string{
			"POST /auth/login":                "Autentica e abre uma sessão",
			"POST /auth/logout":               "Encerra a sessão",
			"GET /auth/sessao":                "Consulta a sessão atual",
			"POST /usuarios":                  "Cadastra um usuário",
			"GET /usuarios":                   "Lista os usuários",
			"GET /usuarios/{id}":              "Busca um usuário por id",
			"GET /usuarios/email/{email}":     "Busca um usuário por email",
			"DELETE /usuarios/{id}":           "Remove um usuário",
			"GET /postagens":                  "Lista as postagens",
			"GET /postagens/buscar?termo=":    "Busca postagens por termo",
			"GET /postagens/{id}":             "Busca uma postagem por id",
			"POST /postagens":                 "Publica uma postagem",
			"PUT /postagens/{id}":             "Atualiza o conteúdo de uma postagem",
			"POST /postagens/{id}/like":       "Adiciona um like à postagem",
			"DELETE /postagens/{id}":          "Remove uma postagem e seus comentários",
			"GET /postagens/{id}/comentarios": "Lista os comentários de uma postagem",
			"POST /comentarios":               "Cria um comentário",
			"DELETE /comentarios/{id}":        "Remove um comentário",
		},
	})
}

// NewHealthHandler retorna o handler de verificação de saúde. O ping
// consulta o banco; uma falha responde 503.
func NewHealthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				escreverJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "indisponivel",
					"erro":   err.Error(),
				})
				return
			}
		}
		escreverJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
