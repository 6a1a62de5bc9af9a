package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// MongoUsuarioRepo deve satisfazer a interface UsuarioRepository.
func TestMongoUsuarioRepo_ImplementaInterface(t *testing.T) {
	var _ UsuarioRepository = (*MongoUsuarioRepo)(nil)
}

// MongoPostagemRepo deve satisfazer a interface PostagemRepository.
func TestMongoPostagemRepo_ImplementaInterface(t *testing.T) {
	var _ PostagemRepository = (*MongoPostagemRepo)(nil)
}

// MongoComentarioRepo deve satisfazer a interface ComentarioRepository.
func TestMongoComentarioRepo_ImplementaInterface(t *testing.T) {
	var _ ComentarioRepository = (*MongoComentarioRepo)(nil)
}

// Teste unitário: o pipeline enriquecido sem filtro começa no $lookup
// e termina na ordenação decrescente por data.
func TestPipelineComAutor_SemFiltro(t *testing.T) {
	pipeline := pipelineComAutor(nil, true)

	if len(pipeline) != 4 {
		t.Fatalf("pipeline com %d estágios, esperado 4", len(pipeline))
	}
	if pipeline[0][0].Key != "$lookup" {
		t.Errorf("primeiro estágio = %q, esperado $lookup", pipeline[0][0].Key)
	}
	ultimo := pipeline[len(pipeline)-1][0]
	if ultimo.Key != "$sort" {
		t.Fatalf("último estágio = %q, esperado $sort", ultimo.Key)
	}
	sort, ok := ultimo.Value.(bson.D)
	if !ok || len(sort) != 1 || sort[0].Key != "data" || sort[0].Value != -1 {
		t.Errorf("ordenação = %v, esperado data decrescente", ultimo.Value)
	}
}

// Teste unitário: o filtro entra como primeiro estágio e a projeção
// limita o autor a nome e email.
func TestPipelineComAutor_ComFiltro(t *testing.T) {
	match := bson.D{{Key: "conteudo", Value: "x"}}
	pipeline := pipelineComAutor(match, false)

	if len(pipeline) != 4 {
		t.Fatalf("pipeline com %d estágios, esperado 4", len(pipeline))
	}
	if pipeline[0][0].Key != "$match" {
		t.Errorf("primeiro estágio = %q, esperado $match", pipeline[0][0].Key)
	}
	if pipeline[len(pipeline)-1][0].Key == "$sort" {
		t.Error("busca por id não deveria ordenar")
	}

	var projecao bson.D
	for _, estagio := range pipeline {
		if estagio[0].Key == "$project" {
			projecao = estagio[0].Value.(bson.D)
		}
	}
	if projecao == nil {
		t.Fatal("esperado estágio $project")
	}
	campos := map[string]bool{}
	for _, campo := range projecao {
		campos[campo.Key] = true
	}
	for _, esperado := range []string{"conteudo", "data", "likes", "usuario.nome", "usuario.email"} {
		if !campos[esperado] {
			t.Errorf("projeção sem o campo %q", esperado)
		}
	}
	if campos["usuario.senha"] || campos["senha"] {
		t.Error("projeção não pode expor a senha do autor")
	}
}
