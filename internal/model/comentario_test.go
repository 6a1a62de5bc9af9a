package model

import (
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestNovoComentario_Normalizacao verifica os valores padrão do candidato.
func TestNovoComentario_Normalizacao(t *testing.T) {
	postagem := primitive.NewObjectID()
	autor := primitive.NewObjectID()
	c := NovoComentario(postagem.Hex(), autor.Hex(), " concordo ")

	if c.PostagemID != postagem {
		t.Errorf("PostagemID = %v, esperado %v", c.PostagemID, postagem)
	}
	if c.UsuarioID != autor {
		t.Errorf("UsuarioID = %v, esperado %v", c.UsuarioID, autor)
	}
	if c.Conteudo != "concordo" {
		t.Errorf("Conteudo = %q, esperado %q", c.Conteudo, "concordo")
	}
	if c.Data.IsZero() {
		t.Error("Data deveria ser preenchida")
	}
}

// TestComentario_Validar cobre campos obrigatórios e o limite de 280 caracteres.
func TestComentario_Validar(t *testing.T) {
	postagem := primitive.NewObjectID().Hex()
	autor := primitive.NewObjectID().Hex()

	tests := []struct {
		nome       string
		comentario *Comentario
		querErro   bool
		mensagem   string
	}{
		{
			nome:       "valido",
			comentario: NovoComentario(postagem, autor, "concordo"),
			querErro:   false,
		},
		{
			nome:       "sem postagem",
			comentario: NovoComentario("", autor, "concordo"),
			querErro:   true,
			mensagem:   `Campos "postagemId", "usuarioId" e "conteudo" são obrigatórios`,
		},
		{
			nome:       "sem autor",
			comentario: NovoComentario(postagem, "invalido", "concordo"),
			querErro:   true,
			mensagem:   `Campos "postagemId", "usuarioId" e "conteudo" são obrigatórios`,
		},
		{
			nome:       "conteudo vazio",
			comentario: NovoComentario(postagem, autor, "   "),
			querErro:   true,
			mensagem:   `Campos "postagemId", "usuarioId" e "conteudo" são obrigatórios`,
		},
		{
			nome:       "280 caracteres",
			comentario: NovoComentario(postagem, autor, strings.Repeat("b", 280)),
			querErro:   false,
		},
		{
			nome:       "281 caracteres",
			comentario: NovoComentario(postagem, autor, strings.Repeat("b", 281)),
			querErro:   true,
			mensagem:   "O comentário não pode ter mais de 280 caracteres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			err := tt.comentario.Validar()
			if !tt.querErro {
				if err != nil {
					t.Fatalf("Validar() = %v, esperado sucesso", err)
				}
				return
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Validar() = %v, esperado *APIError", err)
			}
			if apiErr.Message != tt.mensagem {
				t.Errorf("Message = %q, esperado %q", apiErr.Message, tt.mensagem)
			}
		})
	}
}

// TestAPIError_Error expõe a mensagem diretamente.
func TestAPIError_Error(t *testing.T) {
	err := NovoErroNaoEncontrado("Comentário não encontrado")
	if err.Error() != "Comentário não encontrado" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Code != ErrCodeNaoEncontrado {
		t.Errorf("Code = %q", err.Code)
	}
}
