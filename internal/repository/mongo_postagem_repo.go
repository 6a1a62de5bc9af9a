package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafaelgpo/microblog/internal/model"
)

// MongoPostagemRepo implementa PostagemRepository sobre a coleção postagens.
type MongoPostagemRepo struct {
	collection *mongo.Collection
}

// NewMongoPostagemRepo cria um MongoPostagemRepo.
func NewMongoPostagemRepo(db *mongo.Database) *MongoPostagemRepo {
	return &MongoPostagemRepo{
		collection: db.Collection("postagens"),
	}
}

// pipelineComAutor monta o pipeline de agregação que embute nome e email
// do autor na leitura. O estágio $match é opcional; ordenar é opcional
// porque a busca por id retorna no máximo um documento.
func pipelineComAutor(match bson.D, ordenar bool) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "usuarios"},
			{Key: "localField", Value: "usuarioId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "usuario"},
		}}},
		bson.D{{Key: "$unwind", Value: "$usuario"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "conteudo", Value: 1},
			{Key: "data", Value: 1},
			{Key: "likes", Value: 1},
			{Key: "usuario.nome", Value: 1},
			{Key: "usuario.email", Value: 1},
		}}},
	)

	if ordenar {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "data", Value: -1}}}})
	}

	return pipeline
}

// agregarComAutor executa o pipeline e decodifica as leituras enriquecidas.
func (r *MongoPostagemRepo) agregarComAutor(ctx context.Context, pipeline mongo.Pipeline) ([]*model.PostagemComAutor, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("falha na agregação de postagens: %w", err)
	}
	defer cursor.Close(ctx)

	postagens := []*model.PostagemComAutor{}
	if err := cursor.All(ctx, &postagens); err != nil {
		return nil, fmt.Errorf("falha ao decodificar postagens: %w", err)
	}
	return postagens, nil
}

// Criar insere a postagem e retorna o identificador gerado.
func (r *MongoPostagemRepo) Criar(ctx context.Context, postagem *model.Postagem) (primitive.ObjectID, error) {
	resultado, err := r.collection.InsertOne(ctx, postagem)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("falha ao inserir postagem: %w", err)
	}

	id, ok := resultado.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("identificador inserido com tipo inesperado: %T", resultado.InsertedID)
	}
	return id, nil
}

// ListarTodas retorna todas as postagens enriquecidas, mais recentes primeiro.
func (r *MongoPostagemRepo) ListarTodas(ctx context.Context) ([]*model.PostagemComAutor, error) {
	return r.agregarComAutor(ctx, pipelineComAutor(nil, true))
}

// BuscarPorTermo filtra por expressão no conteúdo, sem diferenciar maiúsculas.
func (r *MongoPostagemRepo) BuscarPorTermo(ctx context.Context, termo string) ([]*model.PostagemComAutor, error) {
	match := bson.D{{Key: "conteudo", Value: bson.D{
		{Key: "$regex", Value: termo},
		{Key: "$options", Value: "i"},
	}}}
	return r.agregarComAutor(ctx, pipelineComAutor(match, true))
}

// BuscarPorID retorna a postagem enriquecida ou nil quando ausente.
func (r *MongoPostagemRepo) BuscarPorID(ctx context.Context, id primitive.ObjectID) (*model.PostagemComAutor, error) {
	match := bson.D{{Key: "_id", Value: id}}
	postagens, err := r.agregarComAutor(ctx, pipelineComAutor(match, false))
	if err != nil {
		return nil, err
	}
	if len(postagens) == 0 {
		return nil, nil
	}
	return postagens[0], nil
}

// AtualizarConteudo grava o novo conteúdo e retorna o documento atualizado.
func (r *MongoPostagemRepo) AtualizarConteudo(ctx context.Context, id primitive.ObjectID, conteudo string) (*model.Postagem, error) {
	var postagem model.Postagem
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"conteudo": conteudo}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&postagem)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao atualizar postagem: %w", err)
	}
	return &postagem, nil
}

// DarLike incrementa likes atomicamente e retorna o documento após o incremento.
func (r *MongoPostagemRepo) DarLike(ctx context.Context, id primitive.ObjectID) (*model.Postagem, error) {
	var postagem model.Postagem
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&postagem)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao dar like: %w", err)
	}
	return &postagem, nil
}

// Deletar remove a postagem e retorna a contagem de removidos.
func (r *MongoPostagemRepo) Deletar(ctx context.Context, id primitive.ObjectID) (int64, error) {
	resultado, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("falha ao deletar postagem: %w", err)
	}
	return resultado.DeletedCount, nil
}

// Existe verifica a presença da postagem na coleção.
func (r *MongoPostagemRepo) Existe(ctx context.Context, id primitive.ObjectID) (bool, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"_id": id},
		options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("falha ao verificar postagem: %w", err)
	}
	return total > 0, nil
}
