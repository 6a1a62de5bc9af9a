package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comentario representa um comentário em uma postagem.
type Comentario struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PostagemID primitive.ObjectID `bson:"postagemId" json:"postagemId"`
	UsuarioID  primitive.ObjectID `bson:"usuarioId" json:"usuarioId"`
	Conteudo   string             `bson:"conteudo" json:"conteudo"`
	Data       time.Time          `bson:"data" json:"data"`
}

// ComentarioComAutor é a leitura enriquecida de um comentário,
// com nome e email do autor embutidos via agregação.
type ComentarioComAutor struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Conteudo string             `bson:"conteudo" json:"conteudo"`
	Data     time.Time          `bson:"data" json:"data"`
	Usuario  ResumoUsuario      `bson:"usuario" json:"usuario"`
}

// NovoComentario monta um candidato a comentário normalizado com
// data = agora. Os identificadores só são preenchidos quando válidos.
func NovoComentario(postagemID, usuarioID, conteudo string) *Comentario {
	c := &Comentario{
		Conteudo: strings.TrimSpace(conteudo),
		Data:     time.Now(),
	}
	if oid, err := primitive.ObjectIDFromHex(postagemID); err == nil {
		c.PostagemID = oid
	}
	if oid, err := primitive.ObjectIDFromHex(usuarioID); err == nil {
		c.UsuarioID = oid
	}
	return c
}

// Validar verifica os invariantes do comentário sem tocar no banco:
// postagemId e usuarioId válidos, conteúdo não vazio com até 280 caracteres.
func (c *Comentario) Validar() error {
	if c.PostagemID.IsZero() || c.UsuarioID.IsZero() || c.Conteudo == "" {
		return NovoErroValidacao(`Campos "postagemId", "usuarioId" e "conteudo" são obrigatórios`)
	}

	if utf8.RuneCountInString(c.Conteudo) > limiteConteudo {
		return NovoErroValidacao("O comentário não pode ter mais de 280 caracteres")
	}

	return nil
}
