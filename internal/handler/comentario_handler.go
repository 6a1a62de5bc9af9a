package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/model"
)

// ComentarioServiceInterface é a interface de serviço exigida pelo
// handler de comentários.
type ComentarioServiceInterface interface {
	Criar(ctx context.Context, postagemID, usuarioID, conteudo string) (*model.Comentario, error)
	ListarPorPostagem(ctx context.Context, postagemID string) ([]*model.ComentarioComAutor, error)
	Deletar(ctx context.Context, id string) error
}

// ComentarioHandler trata a criação, listagem e remoção de comentários.
type ComentarioHandler struct {
	service ComentarioServiceInterface
	metrics metrics.MetricsCollector
}

// NewComentarioHandler cria um ComentarioHandler.
func NewComentarioHandler(service ComentarioServiceInterface, collector metrics.MetricsCollector) *ComentarioHandler {
	return &ComentarioHandler{
		service: service,
		metrics: collector,
	}
}

type criarComentarioRequest struct {
	PostagemID string `json:"postagemId"`
	UsuarioID  string `json:"usuarioId"`
	Conteudo   string `json:"conteudo"`
}

// Criar registra um comentário. Quando o corpo não traz usuarioId, o
// autor é o usuário da sessão.
// POST /comentarios
func (h *ComentarioHandler) Criar(w http.ResponseWriter, r *http.Request) {
	var corpo criarComentarioRequest
	if err := decodificarCorpo(r, &corpo); err != nil {
		tratarErroServico(w, err)
		return
	}

	if corpo.UsuarioID == "" {
		if dados := sessaoObrigatoria(r); dados != nil {
			corpo.UsuarioID = dados.UsuarioID
		}
	}

	comentario, err := h.service.Criar(r.Context(), corpo.PostagemID, corpo.UsuarioID, corpo.Conteudo)
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordComentarioCriado()
	}
	escreverJSON(w, http.StatusCreated, map[string]any{
		"mensagem":   "Comentário criado com sucesso!",
		"comentario": comentario,
	})
}

// ListarPorPostagem retorna os comentários da postagem na rota.
// GET /postagens/{id}/comentarios
func (h *ComentarioHandler) ListarPorPostagem(w http.ResponseWriter, r *http.Request) {
	comentarios, err := h.service.ListarPorPostagem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		tratarErroServico(w, err)
		return
	}
	if comentarios == nil {
		comentarios = []*model.ComentarioComAutor{}
	}

	escreverJSON(w, http.StatusOK, map[string]any{
		"total":       len(comentarios),
		"comentarios": comentarios,
	})
}

// Deletar remove o comentário do identificador na rota.
// DELETE /comentarios/{id}
func (h *ComentarioHandler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deletar(r.Context(), chi.URLParam(r, "id")); err != nil {
		tratarErroServico(w, err)
		return
	}

	escreverJSON(w, http.StatusOK, map[string]string{
		"mensagem": "Comentário deletado com sucesso!",
	})
}
