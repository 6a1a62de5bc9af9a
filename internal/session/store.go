// Package session gerencia as sessões de usuários autenticados.
//
// A sessão é processo-local e volátil: um reinício invalida todas as
// sessões ativas. A interface Store permite trocar a implementação em
// memória por um cache externo compartilhado em implantações com mais
// de uma instância.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// Dados é a identidade em cache de um usuário autenticado.
// É gravada no login e lida a cada requisição autenticada,
// sem nova consulta ao banco.
type Dados struct {
	UsuarioID    string
	UsuarioEmail string
	UsuarioNome  string
}

// Store é a interface de armazenamento de sessões, chaveadas por um
// token opaco carregado pelo cliente em um cookie.
type Store interface {
	// Criar registra uma nova sessão e retorna o token gerado.
	Criar(ctx context.Context, dados Dados) (string, error)

	// Buscar retorna os dados da sessão ou nil quando o token é
	// desconhecido ou a sessão expirou.
	Buscar(ctx context.Context, token string) (*Dados, error)

	// Destruir remove a sessão do token indicado. Token desconhecido
	// não é erro.
	Destruir(ctx context.Context, token string) error

	// DestruirPorUsuario remove todas as sessões ativas do usuário
	// indicado. Usado quando a conta é deletada.
	DestruirPorUsuario(ctx context.Context, usuarioID string) error
}

// gerarToken produz um token de sessão criptograficamente seguro.
func gerarToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
