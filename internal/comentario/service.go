// Package comentario implementa as regras de negócio de comentários.
package comentario

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/repository"
	"github.com/rafaelgpo/microblog/internal/security"
)

// Service concentra a lógica de criação, listagem e remoção de
// comentários. A criação exige que a postagem e o autor existam.
type Service struct {
	comentarios repository.ComentarioRepository
	postagens   repository.PostagemRepository
	usuarios    repository.UsuarioRepository
	sanitizador security.SanitizadorConteudo
}

// NewService cria um Service com os repositórios e o sanitizador.
func NewService(
	comentarios repository.ComentarioRepository,
	postagens repository.PostagemRepository,
	usuarios repository.UsuarioRepository,
	sanitizador security.SanitizadorConteudo,
) *Service {
	return &Service{
		comentarios: comentarios,
		postagens:   postagens,
		usuarios:    usuarios,
		sanitizador: sanitizador,
	}
}

// Criar registra um comentário na postagem indicada e retorna o
// documento persistido.
func (s *Service) Criar(ctx context.Context, postagemID, usuarioID, conteudo string) (*model.Comentario, error) {
	if postagemID != "" {
		if _, err := primitive.ObjectIDFromHex(postagemID); err != nil {
			return nil, model.NovoErroIDInvalido("postagemId inválido")
		}
	}
	if usuarioID != "" {
		if _, err := primitive.ObjectIDFromHex(usuarioID); err != nil {
			return nil, model.NovoErroIDInvalido("usuarioId inválido")
		}
	}

	candidato := model.NovoComentario(postagemID, usuarioID, s.sanitizador.Sanitizar(conteudo))
	if err := candidato.Validar(); err != nil {
		return nil, err
	}

	postagemExiste, err := s.postagens.Existe(ctx, candidato.PostagemID)
	if err != nil {
		return nil, err
	}
	if !postagemExiste {
		return nil, model.NovoErroNaoEncontrado("Postagem não encontrada")
	}

	autorExiste, err := s.usuarios.Existe(ctx, candidato.UsuarioID)
	if err != nil {
		return nil, err
	}
	if !autorExiste {
		return nil, model.NovoErroNaoEncontrado("Usuário não encontrado")
	}

	id, err := s.comentarios.Criar(ctx, candidato)
	if err != nil {
		return nil, err
	}
	candidato.ID = id

	slog.Info("comentário criado",
		slog.String("comentario_id", id.Hex()),
		slog.String("postagem_id", postagemID))
	return candidato, nil
}

// ListarPorPostagem retorna os comentários da postagem com autor
// embutido, do mais recente para o mais antigo.
//
// Não verifica a existência da postagem: uma postagem deletada (ou
// nunca existente) responde lista vazia, não 404.
func (s *Service) ListarPorPostagem(ctx context.Context, postagemID string) ([]*model.ComentarioComAutor, error) {
	oid, err := primitive.ObjectIDFromHex(postagemID)
	if err != nil {
		return nil, model.NovoErroIDInvalido("ID da postagem inválido")
	}

	return s.comentarios.ListarPorPostagem(ctx, oid)
}

// Deletar remove o comentário do identificador indicado.
func (s *Service) Deletar(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.NovoErroIDInvalido("ID inválido")
	}

	removidos, err := s.comentarios.Deletar(ctx, oid)
	if err != nil {
		return err
	}
	if removidos == 0 {
		return model.NovoErroNaoEncontrado("Comentário não encontrado")
	}

	slog.Info("comentário deletado", slog.String("comentario_id", id))
	return nil
}
