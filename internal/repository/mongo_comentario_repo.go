package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rafaelgpo/microblog/internal/model"
)

// MongoComentarioRepo implementa ComentarioRepository sobre a coleção comentarios.
type MongoComentarioRepo struct {
	collection *mongo.Collection
}

// NewMongoComentarioRepo cria um MongoComentarioRepo.
func NewMongoComentarioRepo(db *mongo.Database) *MongoComentarioRepo {
	return &MongoComentarioRepo{
		collection: db.Collection("comentarios"),
	}
}

// Criar insere o comentário e retorna o identificador gerado.
func (r *MongoComentarioRepo) Criar(ctx context.Context, comentario *model.Comentario) (primitive.ObjectID, error) {
	resultado, err := r.collection.InsertOne(ctx, comentario)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("falha ao inserir comentário: %w", err)
	}

	id, ok := resultado.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("identificador inserido com tipo inesperado: %T", resultado.InsertedID)
	}
	return id, nil
}

// ListarPorPostagem retorna os comentários enriquecidos da postagem,
// mais recentes primeiro.
func (r *MongoComentarioRepo) ListarPorPostagem(ctx context.Context, postagemID primitive.ObjectID) ([]*model.ComentarioComAutor, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "postagemId", Value: postagemID}}}},
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
			{Key: "usuario.nome", Value: 1},
			{Key: "usuario.email", Value: 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "data", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("falha na agregação de comentários: %w", err)
	}
	defer cursor.Close(ctx)

	comentarios := []*model.ComentarioComAutor{}
	if err := cursor.All(ctx, &comentarios); err != nil {
		return nil, fmt.Errorf("falha ao decodificar comentários: %w", err)
	}
	return comentarios, nil
}

// Deletar remove o comentário e retorna a contagem de removidos.
func (r *MongoComentarioRepo) Deletar(ctx context.Context, id primitive.ObjectID) (int64, error) {
	resultado, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("falha ao deletar comentário: %w", err)
	}
	return resultado.DeletedCount, nil
}

// DeletarPorPostagem remove todos os comentários da postagem indicada.
func (r *MongoComentarioRepo) DeletarPorPostagem(ctx context.Context, postagemID primitive.ObjectID) (int64, error) {
	resultado, err := r.collection.DeleteMany(ctx, bson.M{"postagemId": postagemID})
	if err != nil {
		return 0, fmt.Errorf("falha ao deletar comentários da postagem: %w", err)
	}
	return resultado.DeletedCount, nil
}

// ListarOrfaos retorna os identificadores de comentários cuja postagem
// não existe mais. A junção com postagens preserva apenas os documentos
// sem correspondência ($size 0).
func (r *MongoComentarioRepo) ListarOrfaos(ctx context.Context) ([]primitive.ObjectID, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "postagens"},
			{Key: "localField", Value: "postagemId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "postagem"},
		}}},
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "postagem", Value: bson.D{{Key: "$size", Value: 0}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("falha na agregação de órfãos: %w", err)
	}
	defer cursor.Close(ctx)

	var documentos []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &documentos); err != nil {
		return nil, fmt.Errorf("falha ao decodificar órfãos: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(documentos))
	for _, doc := range documentos {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// DeletarPorIDs remove os comentários indicados em lote.
func (r *MongoComentarioRepo) DeletarPorIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	resultado, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("falha ao deletar comentários em lote: %w", err)
	}
	return resultado.DeletedCount, nil
}
