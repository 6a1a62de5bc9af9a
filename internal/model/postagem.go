package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// limiteConteudo é o tamanho máximo, em caracteres, do conteúdo
// de postagens e comentários.
const limiteConteudo = 280

// Postagem representa uma publicação curta de um usuário.
type Postagem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UsuarioID primitive.ObjectID `bson:"usuarioId" json:"usuarioId"`
	Conteudo  string             `bson:"conteudo" json:"conteudo"`
	Data      time.Time          `bson:"data" json:"data"`
	Likes     int                `bson:"likes" json:"likes"`
}

// PostagemComAutor é a leitura enriquecida de uma postagem,
// com nome e email do autor embutidos via agregação.
type PostagemComAutor struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Conteudo string             `bson:"conteudo" json:"conteudo"`
	Data     time.Time          `bson:"data" json:"data"`
	Likes    int                `bson:"likes" json:"likes"`
	Usuario  ResumoUsuario      `bson:"usuario" json:"usuario"`
}

// NovaPostagem monta uma candidata a postagem normalizada:
// data = agora, likes = 0. O usuarioId só é preenchido quando
// o identificador recebido é válido, para que Validar aponte
// o campo correto.
func NovaPostagem(usuarioID, conteudo string) *Postagem {
	p := &Postagem{
		Conteudo: strings.TrimSpace(conteudo),
		Data:     time.Now(),
		Likes:    0,
	}
	if oid, err := primitive.ObjectIDFromHex(usuarioID); err == nil {
		p.UsuarioID = oid
	}
	return p
}

// Validar verifica os invariantes da postagem sem tocar no banco:
// usuarioId válido e conteúdo não vazio com até 280 caracteres.
func (p *Postagem) Validar() error {
	if p.UsuarioID.IsZero() || p.Conteudo == "" {
		return NovoErroValidacao(`Campos "usuarioId" e "conteudo" são obrigatórios`)
	}

	if utf8.RuneCountInString(p.Conteudo) > limiteConteudo {
		return NovoErroValidacao("O conteúdo não pode ter mais de 280 caracteres")
	}

	return nil
}

// ValidarConteudoAtualizacao verifica o conteúdo de uma atualização
// parcial de postagem. A atualização só permite o campo conteudo.
func ValidarConteudoAtualizacao(conteudo string) error {
	if utf8.RuneCountInString(conteudo) > limiteConteudo {
		return NovoErroValidacao("O conteúdo não pode ter mais de 280 caracteres")
	}
	return nil
}
