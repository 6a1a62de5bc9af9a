// Package auth autentica usuários e gerencia o ciclo de vida das sessões.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/repository"
	"github.com/rafaelgpo/microblog/internal/session"
)

// Service concentra a lógica de autenticação: verificação de credenciais
// contra o hash bcrypt armazenado e criação/destruição de sessões.
type Service struct {
	usuarios repository.UsuarioRepository
	sessoes  session.Store
}

// NewService cria um Service.
func NewService(usuarios repository.UsuarioRepository, sessoes session.Store) *Service {
	return &Service{
		usuarios: usuarios,
		sessoes:  sessoes,
	}
}

// Autenticar verifica email e senha contra o cadastro.
// Email desconhecido e senha incorreta produzem a mesma falha, para não
// revelar quais emails existem. Conta inativa é rejeitada separadamente.
func (s *Service) Autenticar(ctx context.Context, email, senha string) (*model.Usuario, error) {
	usuario, err := s.usuarios.BuscarPorEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar usuário para autenticação: %w", err)
	}
	if usuario == nil {
		return nil, model.NovoErroCredenciaisInvalidas()
	}

	// bcrypt compara em tempo constante sobre o hash armazenado
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(senha)); err != nil {
		return nil, model.NovoErroCredenciaisInvalidas()
	}

	if !usuario.Ativo {
		return nil, model.NovoErroUsuarioInativo()
	}

	return usuario, nil
}

// Login autentica o usuário e cria a sessão correspondente,
// retornando o usuário (sem a credencial) e o token de sessão.
func (s *Service) Login(ctx context.Context, email, senha string) (*model.Usuario, string, error) {
	usuario, err := s.Autenticar(ctx, email, senha)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessoes.Criar(ctx, session.Dados{
		UsuarioID:    usuario.ID.Hex(),
		UsuarioEmail: usuario.Email,
		UsuarioNome:  usuario.Nome,
	})
	if err != nil {
		return nil, "", fmt.Errorf("falha ao criar sessão: %w", err)
	}

	slog.Info("login realizado", slog.String("email", usuario.Email))
	return usuario.SemSenha(), token, nil
}

// Logout destrói a sessão do token indicado.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessoes.Destruir(ctx, token); err != nil {
		return fmt.Errorf("falha ao destruir sessão: %w", err)
	}
	slog.Info("logout realizado")
	return nil
}

// VerificarSessao retorna a identidade em cache da sessão, sem consultar
// o banco. Retorna nil quando o token é desconhecido ou expirou.
func (s *Service) VerificarSessao(ctx context.Context, token string) (*session.Dados, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessoes.Buscar(ctx, token)
}
