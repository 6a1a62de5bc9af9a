// Package database abre a conexão com o MongoDB.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// connectTimeout limita a conexão inicial e o ping de verificação.
const connectTimeout = 10 * time.Second

// Conectar abre um cliente MongoDB apontando para a URI indicada e
// confirma a conectividade com um ping. Uma falha aqui é fatal para a
// aplicação: não há retry, o processo encerra na inicialização.
func Conectar(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("falha no ping do MongoDB: %w", err)
	}

	return client, nil
}

// Desconectar encerra o cliente com um limite de tempo próprio,
// para uso no desligamento gracioso.
func Desconectar(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("falha ao desconectar do MongoDB: %w", err)
	}
	return nil
}
