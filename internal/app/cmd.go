package app

// Command representa o modo de execução da aplicação.
type Command string

const (
	// CommandServe inicia o servidor da API.
	CommandServe Command = "serve"
	// CommandWorker inicia a varredura de comentários órfãos.
	CommandWorker Command = "worker"
	// CommandHealthcheck consulta a saúde de um servidor em execução.
	// Usado como healthcheck de Docker em imagens distroless.
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand resolve o subcomando dos argumentos de linha de
// comando. Sem argumentos ou com um comando desconhecido, o padrão é
// o servidor da API.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "worker":
		return CommandWorker
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
