// Package postagem implementa as regras de negócio de postagens.
package postagem

import (
	"context"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/repository"
	"github.com/rafaelgpo/microblog/internal/security"
)

// Service concentra a lógica de publicação, consulta, atualização,
// likes e remoção de postagens. Todo conteúdo recebido do cliente
// passa pelo sanitizador antes da validação e da persistência.
type Service struct {
	postagens   repository.PostagemRepository
	usuarios    repository.UsuarioRepository
	comentarios repository.ComentarioRepository
	sanitizador security.SanitizadorConteudo
}

// NewService cria um Service com os repositórios e o sanitizador.
func NewService(
	postagens repository.PostagemRepository,
	usuarios repository.UsuarioRepository,
	comentarios repository.ComentarioRepository,
	sanitizador security.SanitizadorConteudo,
) *Service {
	return &Service{
		postagens:   postagens,
		usuarios:    usuarios,
		comentarios: comentarios,
		sanitizador: sanitizador,
	}
}

// Criar publica uma postagem para o autor indicado e retorna a
// leitura enriquecida com os dados do autor.
func (s *Service) Criar(ctx context.Context, usuarioID, conteudo string) (*model.PostagemComAutor, error) {
	if usuarioID != "" {
		if _, err := primitive.ObjectIDFromHex(usuarioID); err != nil {
			return nil, model.NovoErroIDInvalido("usuarioId inválido")
		}
	}

	candidata := model.NovaPostagem(usuarioID, s.sanitizador.Sanitizar(conteudo))
	if err := candidata.Validar(); err != nil {
		return nil, err
	}

	existe, err := s.usuarios.Existe(ctx, candidata.UsuarioID)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, model.NovoErroNaoEncontrado("Usuário não encontrado")
	}

	id, err := s.postagens.Criar(ctx, candidata)
	if err != nil {
		return nil, err
	}

	slog.Info("postagem criada",
		slog.String("postagem_id", id.Hex()),
		slog.String("usuario_id", usuarioID))

	return s.buscarEnriquecida(ctx, id)
}

// ListarTodas retorna todas as postagens com autor embutido,
// da mais recente para a mais antiga.
func (s *Service) ListarTodas(ctx context.Context) ([]*model.PostagemComAutor, error) {
	return s.postagens.ListarTodas(ctx)
}

// BuscarPorTermo retorna as postagens cujo conteúdo contém o termo.
func (s *Service) BuscarPorTermo(ctx context.Context, termo string) ([]*model.PostagemComAutor, error) {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return nil, model.NovoErroValidacao(`Parâmetro "termo" é obrigatório`)
	}
	return s.postagens.BuscarPorTermo(ctx, termo)
}

// BuscarPorID retorna a postagem com autor embutido.
func (s *Service) BuscarPorID(ctx context.Context, id string) (*model.PostagemComAutor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NovoErroIDInvalido("ID inválido")
	}
	return s.buscarEnriquecida(ctx, oid)
}

// Atualizar grava o novo conteúdo da postagem. O único campo
// atualizável é o conteúdo; quando ele não vem no corpo a
// atualização é rejeitada. Retorna a leitura enriquecida após
// a gravação.
func (s *Service) Atualizar(ctx context.Context, id string, conteudo *string) (*model.PostagemComAutor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NovoErroIDInvalido("ID inválido")
	}

	if conteudo == nil {
		return nil, model.NovoErroValidacao("Nenhum campo válido para atualizar")
	}

	// Conteúdo vazio (inclusive quando a sanitização esvazia o campo)
	// conta como ausência de campo atualizável.
	novoConteudo := s.sanitizador.Sanitizar(*conteudo)
	if novoConteudo == "" {
		return nil, model.NovoErroValidacao("Nenhum campo válido para atualizar")
	}
	if err := model.ValidarConteudoAtualizacao(novoConteudo); err != nil {
		return nil, err
	}

	atualizada, err := s.postagens.AtualizarConteudo(ctx, oid, novoConteudo)
	if err != nil {
		return nil, err
	}
	if atualizada == nil {
		return nil, model.NovoErroNaoEncontrado("Postagem não encontrada")
	}

	slog.Info("postagem atualizada", slog.String("postagem_id", id))
	return s.buscarEnriquecida(ctx, oid)
}

// DarLike incrementa o contador de likes e retorna a leitura
// enriquecida após o incremento.
func (s *Service) DarLike(ctx context.Context, id string) (*model.PostagemComAutor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.NovoErroIDInvalido("ID inválido")
	}

	curtida, err := s.postagens.DarLike(ctx, oid)
	if err != nil {
		return nil, err
	}
	if curtida == nil {
		return nil, model.NovoErroNaoEncontrado("Postagem não encontrada")
	}

	return s.buscarEnriquecida(ctx, oid)
}

// Deletar remove a postagem e, em seguida, os comentários dela.
// A remoção dos comentários é melhor esforço: uma falha aqui não
// desfaz a deleção da postagem, apenas deixa órfãos para a
// varredura de limpeza recolher.
func (s *Service) Deletar(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.NovoErroIDInvalido("ID inválido")
	}

	removidas, err := s.postagens.Deletar(ctx, oid)
	if err != nil {
		return err
	}
	if removidas == 0 {
		return model.NovoErroNaoEncontrado("Postagem não encontrada")
	}

	comentariosRemovidos, err := s.comentarios.DeletarPorPostagem(ctx, oid)
	if err != nil {
		slog.Warn("falha na cascata de comentários",
			slog.String("postagem_id", id),
			slog.String("error", err.Error()))
	}

	slog.Info("postagem deletada",
		slog.String("postagem_id", id),
		slog.Int64("comentarios_removidos", comentariosRemovidos))
	return nil
}

// buscarEnriquecida lê a postagem com autor embutido e converte a
// ausência em erro de domínio.
func (s *Service) buscarEnriquecida(ctx context.Context, id primitive.ObjectID) (*model.PostagemComAutor, error) {
	postagem, err := s.postagens.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if postagem == nil {
		return nil, model.NovoErroNaoEncontrado("Postagem não encontrada")
	}
	return postagem, nil
}
