// Package model define o modelo de domínio do micro-blog.
package model

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// emailRegex aceita o formato simples local@dominio.tld.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Usuario representa um usuário cadastrado no micro-blog.
// O campo Senha guarda o hash bcrypt da credencial e nunca
// aparece nas respostas da API (omitempty + limpeza no serviço).
type Usuario struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Nome        string             `bson:"nome" json:"nome"`
	Email       string             `bson:"email" json:"email"`
	Senha       string             `bson:"senha,omitempty" json:"senha,omitempty"`
	DataCriacao time.Time          `bson:"dataCriacao" json:"dataCriacao"`
	Ativo       bool               `bson:"ativo" json:"ativo"`
}

// NovoUsuario monta um candidato a usuário normalizado:
// campos aparados, dataCriacao = agora, ativo = true.
// A validação fica a cargo de Validar.
func NovoUsuario(nome, email, senha string) *Usuario {
	return &Usuario{
		Nome:        strings.TrimSpace(nome),
		Email:       strings.TrimSpace(email),
		Senha:       senha,
		DataCriacao: time.Now(),
		Ativo:       true,
	}
}

// Validar verifica os invariantes do usuário sem tocar no banco:
// nome com no mínimo 3 caracteres, email no formato local@dominio.tld
// e senha com no mínimo 6 caracteres.
func (u *Usuario) Validar() error {
	if u.Nome == "" || u.Email == "" || u.Senha == "" {
		return NovoErroValidacao(`Campos "nome", "email" e "senha" são obrigatórios`)
	}

	if utf8.RuneCountInString(u.Nome) < 3 {
		return NovoErroValidacao("Nome deve ter no mínimo 3 caracteres")
	}

	if !emailRegex.MatchString(u.Email) {
		return NovoErroValidacao("Email inválido")
	}

	if len(u.Senha) < 6 {
		return NovoErroValidacao("Senha deve ter no mínimo 6 caracteres")
	}

	return nil
}

// SemSenha retorna uma cópia do usuário com o campo Senha limpo,
// pronta para ser serializada em uma resposta da API.
func (u *Usuario) SemSenha() *Usuario {
	copia := *u
	copia.Senha = ""
	return &copia
}

// ResumoUsuario é o subconjunto de campos do autor embutido nas
// leituras enriquecidas de postagens e comentários.
type ResumoUsuario struct {
	Nome  string `bson:"nome" json:"nome"`
	Email string `bson:"email" json:"email"`
}
