// Package usuario implementa as regras de negócio de usuários.
package usuario

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/repository"
	"github.com/rafaelgpo/microblog/internal/session"
)

// Service concentra a lógica de cadastro, consulta e remoção de usuários.
//
// A senha nunca é armazenada em claro: no cadastro é gravado o hash
// bcrypt e todas as leituras devolvem o registro sem a credencial.
type Service struct {
	usuarios   repository.UsuarioRepository
	sessoes    session.Store
	bcryptCost int
}

// NewService cria um Service. O custo do bcrypt vem da configuração.
// sessoes pode ser nil quando não há sessões a invalidar (worker, testes).
func NewService(usuarios repository.UsuarioRepository, sessoes session.Store, bcryptCost int) *Service {
	return &Service{
		usuarios:   usuarios,
		sessoes:    sessoes,
		bcryptCost: bcryptCost,
	}
}

// Criar cadastra um novo usuário: verifica a unicidade do email,
// valida o candidato, grava o hash da senha e retorna o registro
// persistido sem a credencial.
//
// A checagem de unicidade é apenas em nível de aplicação; a corrida
// leitura-escrita entre duas requisições simultâneas é uma limitação
// conhecida e aceita.
func (s *Service) Criar(ctx context.Context, nome, email, senha string) (*model.Usuario, error) {
	// O email persistido é o normalizado; a checagem de unicidade
	// precisa olhar para o mesmo valor.
	email = strings.TrimSpace(email)

	existente, err := s.usuarios.BuscarPorEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("falha na checagem de unicidade: %w", err)
	}
	if existente != nil {
		return nil, model.NovoErroEmailDuplicado()
	}

	candidato := model.NovoUsuario(nome, email, senha)
	if err := candidato.Validar(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(candidato.Senha), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}
	candidato.Senha = string(hash)

	id, err := s.usuarios.Criar(ctx, candidato)
	if err != nil {
		return nil, err
	}
	candidato.ID = id

	slog.Info("usuário criado", slog.String("email", candidato.Email))
	return candidato.SemSenha(), nil
}

// ListarTodos retorna todos os usuários sem a credencial, sem paginação.
func (s *Service) ListarTodos(ctx context.Context) ([]*model.Usuario, error) {
	return s.usuarios.ListarTodos(ctx)
}

// BuscarPorID retorna o usuário do identificador indicado, sem a credencial.
func (s *Service) BuscarPorID(ctx context.Context, id string) (*model.Usuario, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NovoErroIDInvalido("ID inválido")
	}

	usuario, err := s.usuarios.BuscarPorID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, model.NovoErroNaoEncontrado("Usuário não encontrado")
	}
	return usuario, nil
}

// BuscarPorEmail retorna o usuário do email indicado, sem a credencial.
func (s *Service) BuscarPorEmail(ctx context.Context, email string) (*model.Usuario, error) {
	usuario, err := s.usuarios.BuscarPorEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, model.NovoErroNaoEncontrado("Usuário não encontrado")
	}
	return usuario.SemSenha(), nil
}

// Deletar remove o usuário do identificador indicado.
//
// Não há cascata para postagens e comentários do usuário removido; os
// registros ficam órfãos. Comportamento preservado do sistema original
// e documentado como caminho conhecido de dados órfãos.
func (s *Service) Deletar(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.NovoErroIDInvalido("ID inválido")
	}

	removidos, err := s.usuarios.Deletar(ctx, oid)
	if err != nil {
		return err
	}
	if removidos == 0 {
		return model.NovoErroNaoEncontrado("Usuário não encontrado")
	}

	// Sessões ativas do usuário removido deixam de valer.
	if s.sessoes != nil {
		if err := s.sessoes.DestruirPorUsuario(ctx, id); err != nil {
			slog.Warn("falha ao destruir sessões do usuário deletado",
				slog.String("usuario_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.Info("usuário deletado", slog.String("usuario_id", id))
	return nil
}
