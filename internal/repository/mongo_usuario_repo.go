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

// semSenha é a projeção que remove a credencial das leituras públicas.
var semSenha = bson.D{{Key: "senha", Value: 0}}

// MongoUsuarioRepo implementa UsuarioRepository sobre a coleção usuarios.
type MongoUsuarioRepo struct {
	collection *mongo.Collection
}

// NewMongoUsuarioRepo cria um MongoUsuarioRepo.
func NewMongoUsuarioRepo(db *mongo.Database) *MongoUsuarioRepo {
	return &MongoUsuarioRepo{
		collection: db.Collection("usuarios"),
	}
}

// Criar insere o usuário e retorna o identificador gerado.
func (r *MongoUsuarioRepo) Criar(ctx context.Context, usuario *model.Usuario) (primitive.ObjectID, error) {
	resultado, err := r.collection.InsertOne(ctx, usuario)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("falha ao inserir usuário: %w", err)
	}

	id, ok := resultado.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("identificador inserido com tipo inesperado: %T", resultado.InsertedID)
	}
	return id, nil
}

// BuscarPorEmail retorna o usuário com a credencial incluída.
func (r *MongoUsuarioRepo) BuscarPorEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&usuario)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar usuário por email: %w", err)
	}
	return &usuario, nil
}

// BuscarPorID retorna o usuário sem o campo senha.
func (r *MongoUsuarioRepo) BuscarPorID(ctx context.Context, id primitive.ObjectID) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.collection.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(semSenha)).Decode(&usuario)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return &usuario, nil
}

// ListarTodos retorna todos os usuários sem o campo senha.
func (r *MongoUsuarioRepo) ListarTodos(ctx context.Context) ([]*model.Usuario, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetProjection(semSenha))
	if err != nil {
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}
	defer cursor.Close(ctx)

	usuarios := []*model.Usuario{}
	if err := cursor.All(ctx, &usuarios); err != nil {
		return nil, fmt.Errorf("falha ao decodificar usuários: %w", err)
	}
	return usuarios, nil
}

// Deletar remove o usuário e retorna a contagem de removidos.
func (r *MongoUsuarioRepo) Deletar(ctx context.Context, id primitive.ObjectID) (int64, error) {
	resultado, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("falha ao deletar usuário: %w", err)
	}
	return resultado.DeletedCount, nil
}

// Existe verifica a presença do usuário na coleção.
func (r *MongoUsuarioRepo) Existe(ctx context.Context, id primitive.ObjectID) (bool, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"_id": id},
		options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("falha ao verificar usuário: %w", err)
	}
	return total > 0, nil
}
