package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/model"
)

// UsuarioServiceInterface é a interface de serviço exigida pelo
// handler de usuários.
type UsuarioServiceInterface interface {
	Criar(ctx context.Context, nome, email, senha string) (*model.Usuario, error)
	ListarTodos(ctx context.Context) ([]*model.Usuario, error)
	BuscarPorID(ctx context.Context, id string) (*model.Usuario, error)
	BuscarPorEmail(ctx context.Context, email string) (*model.Usuario, error)
	Deletar(ctx context.Context, id string) error
}

// UsuarioHandler trata o CRUD de usuários.
type UsuarioHandler struct {
	service UsuarioServiceInterface
	metrics metrics.MetricsCollector
}

// NewUsuarioHandler cria um UsuarioHandler.
func NewUsuarioHandler(service UsuarioServiceInterface, collector metrics.MetricsCollector) *UsuarioHandler {
	return &UsuarioHandler{
		service: service,
		metrics: collector,
	}
}

type criarUsuarioRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Criar cadastra um novo usuário.
// POST /usuarios
func (h *UsuarioHandler) Criar(w http.ResponseWriter, r *http.Request) {
	var corpo criarUsuarioRequest
	if err := decodificarCorpo(r, &corpo); err != nil {
		tratarErroServico(w, err)
		return
	}

	if corpo.Nome == "" || corpo.Email == "" || corpo.Senha == "" {
		escreverErro(w, http.StatusBadRequest, `Campos "nome", "email" e "senha" são obrigatórios`)
		return
	}

	usuario, err := h.service.Criar(r.Context(), corpo.Nome, corpo.Email, corpo.Senha)
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordUsuarioRegistrado()
	}
	escreverJSON(w, http.StatusCreated, map[string]any{
		"mensagem": "Usuário criado com sucesso!",
		"usuario":  usuario,
	})
}

// Listar retorna todos os usuários.
// GET /usuarios
func (h *UsuarioHandler) Listar(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.service.ListarTodos(r.Context())
	if err != nil {
		tratarErroServico(w, err)
		return
	}
	if usuarios == nil {
		usuarios = []*model.Usuario{}
	}

	escreverJSON(w, http.StatusOK, map[string]any{
		"total":    len(usuarios),
		"usuarios": usuarios,
	})
}

// BuscarPorID retorna o usuário do identificador na rota.
// GET /usuarios/{id}
func (h *UsuarioHandler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	usuario, err := h.service.BuscarPorID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	escreverJSON(w, http.StatusOK, usuario)
}

// BuscarPorEmail retorna o usuário do email na rota.
// GET /usuarios/email/{email}
func (h *UsuarioHandler) BuscarPorEmail(w http.ResponseWriter, r *http.Request) {
	usuario, err := h.service.BuscarPorEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	escreverJSON(w, http.StatusOK, usuario)
}

// Deletar remove o usuário do identificador na rota.
// DELETE /usuarios/{id}
func (h *UsuarioHandler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deletar(r.Context(), chi.URLParam(r, "id")); err != nil {
		tratarErroServico(w, err)
		return
	}

	escreverJSON(w, http.StatusOK, map[string]string{
		"mensagem": "Usuário deletado com sucesso!",
	})
}
