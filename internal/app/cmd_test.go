package app

import "testing"

// TestParseCommand cobre a resolução dos subcomandos e o padrão serve.
func TestParseCommand(t *testing.T) {
	casos := []struct {
		nome string
		args []string
		want Command
	}{
		{"sem argumentos", nil, CommandServe},
		{"serve explícito", []string{"serve"}, CommandServe},
		{"worker", []string{"worker"}, CommandWorker},
		{"healthcheck", []string{"healthcheck"}, CommandHealthcheck},
		{"comando desconhecido vira serve", []string{"qualquer"}, CommandServe},
		{"argumentos extras são ignorados", []string{"worker", "--x"}, CommandWorker},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			if got := ParseCommand(caso.args); got != caso.want {
				t.Errorf("ParseCommand(%v) = %q, want %q", caso.args, got, caso.want)
			}
		})
	}
}
