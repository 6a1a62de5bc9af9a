// Package security fornece as proteções de conteúdo da aplicação.
//
// SanitizadorConteudo limpa o texto enviado por usuários em postagens e
// comentários antes da persistência, removendo qualquer marcação HTML
// para impedir XSS armazenado quando o conteúdo for exibido por um
// cliente web.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizadorConteudo define a limpeza de texto de usuário.
type SanitizadorConteudo interface {
	// Sanitizar remove toda marcação HTML do texto, devolvendo apenas
	// o conteúdo textual. Entrada vazia produz saída vazia; a operação
	// é idempotente.
	Sanitizar(texto string) string
}

// sanitizador implementa SanitizadorConteudo com a política estrita
// do bluemonday: nenhuma tag ou atributo é permitido.
type sanitizador struct {
	policy *bluemonday.Policy
}

// NewSanitizadorConteudo cria um SanitizadorConteudo de política estrita.
// Postagens e comentários são texto puro; qualquer HTML embutido é
// descartado, não escapado.
func NewSanitizadorConteudo() *sanitizador {
	return &sanitizador{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitizar remove a marcação e desfaz o escape de entidades para que
// texto legítimo com & < > seja armazenado como o usuário digitou.
func (s *sanitizador) Sanitizar(texto string) string {
	limpo := s.policy.Sanitize(texto)
	return strings.TrimSpace(html.UnescapeString(limpo))
}
