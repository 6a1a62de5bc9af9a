package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/middleware"
	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/session"
)

// AuthServiceInterface é a interface de serviço exigida pelo handler
// de autenticação.
type AuthServiceInterface interface {
	// Login autentica o usuário e abre uma sessão, retornando o
	// usuário sem a credencial e o token gerado.
	Login(ctx context.Context, email, senha string) (*model.Usuario, string, error)

	// Logout encerra a sessão do token indicado.
	Logout(ctx context.Context, token string) error
}

// AuthHandlerConfig é a configuração do handler de autenticação.
type AuthHandlerConfig struct {
	CookieSecure  bool
	SessionMaxAge int // validade do cookie de sessão em segundos
}

// AuthHandler trata login, logout e consulta de sessão.
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
	metrics metrics.MetricsCollector
}

// NewAuthHandler cria um AuthHandler.
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, collector metrics.MetricsCollector) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		metrics: collector,
	}
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Login autentica o usuário e grava o cookie HTTP Only de sessão.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var corpo loginRequest
	if err := decodificarCorpo(r, &corpo); err != nil {
		tratarErroServico(w, err)
		return
	}

	corpo.Email = strings.TrimSpace(corpo.Email)
	if corpo.Email == "" || corpo.Senha == "" {
		escreverErro(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	usuario, token, err := h.service.Login(r.Context(), corpo.Email, corpo.Senha)
	if err != nil {
		tratarErroServico(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.NomeCookieSessao,
		Value:    token,
		Path:     "/",
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	if h.metrics != nil {
		h.metrics.RecordLogin()
	}
	slog.Info("login realizado", slog.String("email", usuario.Email))

	escreverJSON(w, http.StatusOK, map[string]any{
		"mensagem": "Login realizado com sucesso!",
		"usuario":  usuario,
	})
}

// Logout encerra a sessão e expira o cookie.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.NomeCookieSessao); err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			tratarErroServico(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.NomeCookieSessao,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	escreverJSON(w, http.StatusOK, map[string]string{
		"mensagem": "Logout realizado com sucesso!",
	})
}

// Sessao informa se a requisição carrega uma sessão válida.
// GET /auth/sessao
func (h *AuthHandler) Sessao(w http.ResponseWriter, r *http.Request) {
	dados, ok := middleware.SessaoDoContexto(r.Context())
	if !ok {
		escreverJSON(w, http.StatusUnauthorized, map[string]any{
			"autenticado": false,
			"mensagem":    "Usuário não autenticado",
		})
		return
	}

	escreverJSON(w, http.StatusOK, map[string]any{
		"autenticado": true,
		"usuario": map[string]string{
			"id":    dados.UsuarioID,
			"nome":  dados.UsuarioNome,
			"email": dados.UsuarioEmail,
		},
	})
}

// sessaoObrigatoria retorna os dados da sessão do contexto. As rotas
// protegidas passam pelo middleware de autenticação, então a ausência
// aqui indica erro de configuração do router.
func sessaoObrigatoria(r *http.Request) *session.Dados {
	dados, _ := middleware.SessaoDoContexto(r.Context())
	return dados
}
