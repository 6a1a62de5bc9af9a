// Package repository define as interfaces de persistência das entidades.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rafaelgpo/microblog/internal/model"
)

// UsuarioRepository é a interface de persistência de usuários.
type UsuarioRepository interface {
	// Criar insere o usuário e retorna o identificador gerado.
	Criar(ctx context.Context, usuario *model.Usuario) (primitive.ObjectID, error)

	// BuscarPorEmail retorna o usuário com a credencial incluída,
	// para autenticação e checagem de unicidade. Retorna nil quando ausente.
	BuscarPorEmail(ctx context.Context, email string) (*model.Usuario, error)

	// BuscarPorID retorna o usuário sem o campo senha. Retorna nil quando ausente.
	BuscarPorID(ctx context.Context, id primitive.ObjectID) (*model.Usuario, error)

	// ListarTodos retorna todos os usuários sem o campo senha.
	ListarTodos(ctx context.Context) ([]*model.Usuario, error)

	// Deletar remove o usuário e retorna a contagem de removidos.
	Deletar(ctx context.Context, id primitive.ObjectID) (int64, error)

	// Existe verifica se o usuário está presente na coleção.
	Existe(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// PostagemRepository é a interface de persistência de postagens.
type PostagemRepository interface {
	// Criar insere a postagem e retorna o identificador gerado.
	Criar(ctx context.Context, postagem *model.Postagem) (primitive.ObjectID, error)

	// ListarTodas retorna todas as postagens com autor embutido,
	// ordenadas por data decrescente.
	ListarTodas(ctx context.Context) ([]*model.PostagemComAutor, error)

	// BuscarPorTermo retorna as postagens cujo conteúdo casa com o termo
	// (sem diferenciar maiúsculas), com autor embutido e ordenação decrescente.
	BuscarPorTermo(ctx context.Context, termo string) ([]*model.PostagemComAutor, error)

	// BuscarPorID retorna a postagem com autor embutido. Retorna nil quando ausente.
	BuscarPorID(ctx context.Context, id primitive.ObjectID) (*model.PostagemComAutor, error)

	// AtualizarConteudo grava o novo conteúdo e retorna o documento
	// após a atualização. Retorna nil quando a postagem não existe.
	AtualizarConteudo(ctx context.Context, id primitive.ObjectID, conteudo string) (*model.Postagem, error)

	// DarLike incrementa o contador de likes atomicamente e retorna o
	// documento após o incremento. Retorna nil quando a postagem não existe.
	DarLike(ctx context.Context, id primitive.ObjectID) (*model.Postagem, error)

	// Deletar remove a postagem e retorna a contagem de removidos.
	Deletar(ctx context.Context, id primitive.ObjectID) (int64, error)

	// Existe verifica se a postagem está presente na coleção.
	Existe(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ComentarioRepository é a interface de persistência de comentários.
type ComentarioRepository interface {
	// Criar insere o comentário e retorna o identificador gerado.
	Criar(ctx context.Context, comentario *model.Comentario) (primitive.ObjectID, error)

	// ListarPorPostagem retorna os comentários da postagem com autor
	// embutido, ordenados por data decrescente.
	ListarPorPostagem(ctx context.Context, postagemID primitive.ObjectID) ([]*model.ComentarioComAutor, error)

	// Deletar remove o comentário e retorna a contagem de removidos.
	Deletar(ctx context.Context, id primitive.ObjectID) (int64, error)

	// DeletarPorPostagem remove todos os comentários da postagem indicada.
	// Usado pela cascata de deleção de postagens.
	DeletarPorPostagem(ctx context.Context, postagemID primitive.ObjectID) (int64, error)

	// ListarOrfaos retorna os identificadores de comentários cuja postagem
	// não existe mais. Usado pela varredura de limpeza.
	ListarOrfaos(ctx context.Context) ([]primitive.ObjectID, error)

	// DeletarPorIDs remove os comentários indicados em lote.
	DeletarPorIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}
