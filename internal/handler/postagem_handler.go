package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/model"
)

// PostagemServiceInterface é a interface de serviço exigida pelo
// handler de postagens.
type PostagemServiceInterface interface {
	Criar(ctx context.Context, usuarioID, conteudo string) (*model.PostagemComAutor, error)
	ListarTodas(ctx context.Context) ([]*model.PostagemComAutor, error)
	BuscarPorTermo(ctx context.Context, termo string) ([]*model.PostagemComAutor, error)
	BuscarPorID(ctx context.Context, id string) (*model.PostagemComAutor, error)
	Atualizar(ctx context.Context, id string, conteudo *string) (*model.PostagemComAutor, error)
	DarLike(ctx context.Context, id string) (*model.PostagemComAutor, error)
	Deletar(ctx context.Context, id string) error
}

// PostagemHandler trata a publicação, consulta e remoção de postagens.
type PostagemHandler struct {
	service PostagemServiceInterface
	metrics metrics.MetricsCollector
}

// NewPostagemHandler cria um PostagemHandler.
func NewPostagemHandler(service PostagemServiceInterface, collector metrics.MetricsCollector) *PostagemHandler {
	return &PostagemHandler{
		service: service,
		metrics: collector,
	}
}

type criarPostagemRequest struct {
	UsuarioID string `json:"usuarioId"`
	Conteudo  string `json:"conteudo"`
}

type atualizarPostagemRequest struct {
	Conteudo *string `json:"conteudo"`
}

// Criar publica uma postagem. Quando o corpo não traz usuarioId, o
// autor é o usuário da sessão.
// POST /postagens
func (h *PostagemHandler) Criar(w http.ResponseWriter, r *http.Request) {
	var corpo criarPostagemRequest
	if err := decodificarCorpo(r, &corpo); err != nil {
		tratarErroServico(w, err)
		return
	}

	if corpo.UsuarioID == "" {
		if dados := sessaoObrigatoria(r); dados != nil {
			corpo.UsuarioID = dados.UsuarioID
		}
	}

	postagem, err := h.service.Criar(r.Context(), corpo.UsuarioID, corpo.Conteudo)
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordPostagemCriada()
	}
	escreverJSON(w, http.StatusCreated, map[string]any{
		"mensagem": "Postagem publicada com sucesso!",
		"postagem": postagem,
	})
}

// Listar retorna todas as postagens, da mais recente para a mais antiga.
// GET /postagens
func (h *PostagemHandler) Listar(w http.ResponseWriter, r *http.Request) {
	postagens, err := h.service.ListarTodas(r.Context())
	if err != nil {
		tratarErroServico(w, err)
		return
	}
	if postagens == nil {
		postagens = []*model.PostagemComAutor{}
	}

	escreverJSON(w, http.StatusOK, map[string]any{
		"total":     len(postagens),
		"postagens": postagens,
	})
}

// Buscar retorna as postagens cujo conteúdo contém o termo da query.
// GET /postagens/buscar?termo=
func (h *PostagemHandler) Buscar(w http.ResponseWriter, r *http.Request) {
	termo := r.URL.Query().Get("termo")

	postagens, err := h.service.BuscarPorTermo(r.Context(), termo)
	if err != nil {
		tratarErroServico(w, err)
		return
	}
	if postagens == nil {
		postagens = []*model.PostagemComAutor{}
	}

	escreverJSON(w, http.StatusOK, map[string]any{
		"termo":     termo,
		"total":     len(postagens),
		"postagens": postagens,
	})
}

// BuscarPorID retorna a postagem do identificador na rota.
// GET /postagens/{id}
func (h *PostagemHandler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	postagem, err := h.service.BuscarPorID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	escreverJSON(w, http.StatusOK, postagem)
}

// Atualizar grava o novo conteúdo da postagem.
// PUT /postagens/{id}
func (h *PostagemHandler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var corpo atualizarPostagemRequest
	if err := decodificarCorpo(r, &corpo); err != nil {
		tratarErroServico(w, err)
		return
	}

	postagem, err := h.service.Atualizar(r.Context(), chi.URLParam(r, "id"), corpo.Conteudo)
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	escreverJSON(w, http.StatusOK, map[string]any{
		"mensagem": "Postagem atualizada com sucesso!",
		"postagem": postagem,
	})
}

// DarLike incrementa o contador de likes da postagem.
// POST /postagens/{id}/like
func (h *PostagemHandler) DarLike(w http.ResponseWriter, r *http.Request) {
	postagem, err := h.service.DarLike(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLike()
	}
	escreverJSON(w, http.StatusOK, map[string]any{
		"mensagem": "Like adicionado com sucesso!",
		"postagem": postagem,
	})
}

// Deletar remove a postagem e os comentários dela.
// DELETE /postagens/{id}
func (h *PostagemHandler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deletar(r.Context(), chi.URLParam(r, "id")); err != nil {
		tratarErroServico(w, err)
		return
	}

	escreverJSON(w, http.StatusOK, map[string]string{
		"mensagem": "Postagem deletada com sucesso!",
	})
}
