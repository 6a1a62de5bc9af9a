// Package handler provê os handlers HTTP da API.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rafaelgpo/microblog/internal/model"
)

// escreverJSON serializa o corpo com o código de status indicado.
func escreverJSON(w http.ResponseWriter, statusCode int, corpo any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(corpo); err != nil {
		slog.Error("falha ao serializar resposta", slog.String("error", err.Error()))
	}
}

// escreverErro responde no formato unificado {"erro": mensagem}.
func escreverErro(w http.ResponseWriter, statusCode int, mensagem string) {
	escreverJSON(w, statusCode, map[string]string{"erro": mensagem})
}

// mapearCodigoParaStatus traduz o código do erro de domínio para o
// código de status HTTP.
func mapearCodigoParaStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidacao,
		model.ErrCodeEmailDuplicado,
		model.ErrCodeIDInvalido,
		model.ErrCodeCorpoInvalido:
		return http.StatusBadRequest
	case model.ErrCodeNaoEncontrado,
		model.ErrCodeRotaNaoEncontrada:
		return http.StatusNotFound
	case model.ErrCodeNaoAutenticado,
		model.ErrCodeCredenciaisInvalidas,
		model.ErrCodeUsuarioInativo:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// tratarErroServico traduz um erro vindo da camada de serviço para a
// resposta HTTP. Erros fora da taxonomia viram 500 com mensagem
// genérica; o detalhe fica apenas no log.
func tratarErroServico(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		escreverErro(w, mapearCodigoParaStatus(apiErr), apiErr.Message)
		return
	}

	slog.Error("erro interno", slog.String("error", err.Error()))
	escreverErro(w, http.StatusInternalServerError, "Erro interno do servidor")
}

// decodificarCorpo lê o corpo JSON da requisição para dst. Corpo vazio
// equivale a um objeto sem campos; JSON malformado é rejeitado com o
// erro de corpo inválido, que o roteamento de status converte em 400.
func decodificarCorpo(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return model.NovoErroCorpoInvalido()
	}
	return nil
}
