// Package model define o modelo de domínio do micro-blog.
package model

// APIError representa o formato unificado de erro da API.
// O código classifica o tipo de falha e a mensagem é exibida
// diretamente ao cliente no campo "erro" da resposta.
type APIError struct {
	Code    string // código do erro
	Message string // mensagem do erro
}

// Error implementa a interface error.
func (e *APIError) Error() string {
	return e.Message
}

// Códigos de erro definidos
const (
	ErrCodeValidacao            = "VALIDACAO"
	ErrCodeEmailDuplicado       = "EMAIL_DUPLICADO"
	ErrCodeIDInvalido           = "ID_INVALIDO"
	ErrCodeNaoEncontrado        = "NAO_ENCONTRADO"
	ErrCodeNaoAutenticado       = "NAO_AUTENTICADO"
	ErrCodeCredenciaisInvalidas = "CREDENCIAIS_INVALIDAS"
	ErrCodeUsuarioInativo       = "USUARIO_INATIVO"
	ErrCodeCorpoInvalido        = "CORPO_INVALIDO"
	ErrCodeRotaNaoEncontrada    = "ROTA_NAO_ENCONTRADA"
)

// NovoErroValidacao gera um erro de validação de campos.
func NovoErroValidacao(mensagem string) *APIError {
	return &APIError{
		Code:    ErrCodeValidacao,
		Message: mensagem,
	}
}

// NovoErroEmailDuplicado gera o erro de email já cadastrado.
func NovoErroEmailDuplicado() *APIError {
	return &APIError{
		Code:    ErrCodeEmailDuplicado,
		Message: "Email já cadastrado",
	}
}

// NovoErroIDInvalido gera um erro de identificador malformado.
// A mensagem varia conforme o campo ("ID inválido", "usuarioId inválido" etc).
func NovoErroIDInvalido(mensagem string) *APIError {
	return &APIError{
		Code:    ErrCodeIDInvalido,
		Message: mensagem,
	}
}

// NovoErroNaoEncontrado gera um erro de entidade ausente.
func NovoErroNaoEncontrado(mensagem string) *APIError {
	return &APIError{
		Code:    ErrCodeNaoEncontrado,
		Message: mensagem,
	}
}

// NovoErroNaoAutenticado gera o erro de acesso sem sessão válida.
func NovoErroNaoAutenticado() *APIError {
	return &APIError{
		Code:    ErrCodeNaoAutenticado,
		Message: "Acesso negado. Você precisa estar autenticado para acessar este recurso.",
	}
}

// NovoErroCredenciaisInvalidas gera o erro de falha de autenticação.
// A mensagem é a mesma para email desconhecido e senha incorreta,
// evitando enumeração de emails cadastrados.
func NovoErroCredenciaisInvalidas() *APIError {
	return &APIError{
		Code:    ErrCodeCredenciaisInvalidas,
		Message: "Email ou senha inválidos",
	}
}

// NovoErroUsuarioInativo gera o erro de conta desativada.
func NovoErroUsuarioInativo() *APIError {
	return &APIError{
		Code:    ErrCodeUsuarioInativo,
		Message: "Usuário inativo",
	}
}

// NovoErroCorpoInvalido gera o erro de corpo JSON malformado.
func NovoErroCorpoInvalido() *APIError {
	return &APIError{
		Code:    ErrCodeCorpoInvalido,
		Message: "JSON inválido",
	}
}

// NovoErroRotaNaoEncontrada gera o erro de rota inexistente.
func NovoErroRotaNaoEncontrada() *APIError {
	return &APIError{
		Code:    ErrCodeRotaNaoEncontrada,
		Message: "Rota não encontrada",
	}
}
