package security

import "testing"

// TestSanitizar cobre remoção de marcação e preservação de texto puro.
func TestSanitizar(t *testing.T) {
	s := NewSanitizadorConteudo()

	tests := []struct {
		nome    string
		entrada string
		saida   string
	}{
		{
			nome:    "texto puro passa intacto",
			entrada: "bom dia, rede!",
			saida:   "bom dia, rede!",
		},
		{
			nome:    "script é removido",
			entrada: `oi <script>alert("xss")</script> mundo`,
			saida:   `oi  mundo`,
		},
		{
			nome:    "tags de formatação são removidas mantendo o texto",
			entrada: "<b>negrito</b> e <i>itálico</i>",
			saida:   "negrito e itálico",
		},
		{
			nome:    "entidades voltam ao texto original",
			entrada: "pão & café < 10",
			saida:   "pão & café < 10",
		},
		{
			nome:    "vazio continua vazio",
			entrada: "",
			saida:   "",
		},
		{
			nome:    "atributos de evento não sobrevivem",
			entrada: `<img src=x onerror=alert(1)>foto`,
			saida:   "foto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			got := s.Sanitizar(tt.entrada)
			if got != tt.saida {
				t.Errorf("Sanitizar(%q) = %q, esperado %q", tt.entrada, got, tt.saida)
			}
		})
	}
}

// TestSanitizar_Idempotente aplica duas vezes com o mesmo resultado.
func TestSanitizar_Idempotente(t *testing.T) {
	s := NewSanitizadorConteudo()
	entrada := `texto com <em>marcação</em> & entidades`

	uma := s.Sanitizar(entrada)
	duas := s.Sanitizar(uma)
	if uma != duas {
		t.Errorf("sanitização não idempotente: %q vs %q", uma, duas)
	}
}
