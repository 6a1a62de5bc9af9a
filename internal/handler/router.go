package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/middleware"
	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/session"
)

// RouterDeps reúne as dependências do router.
type RouterDeps struct {
	// Middlewares
	Sessoes           session.Store
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// Serviços
	AuthService       AuthServiceInterface
	AuthConfig        AuthHandlerConfig
	UsuarioService    UsuarioServiceInterface
	PostagemService   PostagemServiceInterface
	ComentarioService ComentarioServiceInterface

	// Observabilidade. Ambos opcionais: sem Metrics nada é medido,
	// sem Gatherer a rota /metrics não é registrada.
	Metrics  metrics.MetricsCollector
	Gatherer prometheus.Gatherer

	// Saúde
	PingBanco func(ctx context.Context) error
}

// NewRouter monta o chi.Router com a tabela de rotas completa e a
// cadeia de middlewares.
//
// Ordem da cadeia:
//
//	RequestID → Recovery → CORS → SecurityHeaders → Métricas → AnexarSessao → Logging
//
// O log roda por último para enxergar a sessão anexada; as rotas
// protegidas acrescentam ExigirAutenticacao por grupo.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricasMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewAnexarSessaoMiddleware(deps.Sessoes))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}

	exigirAutenticacao := middleware.NewExigirAutenticacao()

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.Metrics)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioService, deps.Metrics)
	postagemHandler := NewPostagemHandler(deps.PostagemService, deps.Metrics)
	comentarioHandler := NewComentarioHandler(deps.ComentarioService, deps.Metrics)

	r.Get("/", Home)
	r.Get("/health", NewHealthHandler(deps.PingBanco))

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Get("/sessao", authHandler.Sessao)

		r.Group(func(r chi.Router) {
			r.Use(exigirAutenticacao)
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Route("/usuarios", func(r chi.Router) {
		r.Post("/", usuarioHandler.Criar)

		r.Group(func(r chi.Router) {
			r.Use(exigirAutenticacao)
			r.Get("/", usuarioHandler.Listar)
			r.Get("/email/{email}", usuarioHandler.BuscarPorEmail)
			r.Get("/{id}", usuarioHandler.BuscarPorID)
			r.Delete("/{id}", usuarioHandler.Deletar)
		})
	})

	r.Route("/postagens", func(r chi.Router) {
		r.Get("/", postagemHandler.Listar)
		r.Get("/buscar", postagemHandler.Buscar)
		r.Get("/{id}", postagemHandler.BuscarPorID)
		r.Get("/{id}/comentarios", comentarioHandler.ListarPorPostagem)

		r.Group(func(r chi.Router) {
			r.Use(exigirAutenticacao)
			r.Post("/", postagemHandler.Criar)
			r.Put("/{id}", postagemHandler.Atualizar)
			r.Post("/{id}/like", postagemHandler.DarLike)
			r.Delete("/{id}", postagemHandler.Deletar)
		})
	})

	r.Route("/comentarios", func(r chi.Router) {
		r.Use(exigirAutenticacao)
		r.Post("/", comentarioHandler.Criar)
		r.Delete("/{id}", comentarioHandler.Deletar)
	})

	// Qualquer rota fora da tabela, inclusive método errado em rota
	// existente, responde 404 com a mensagem unificada.
	rotaNaoEncontrada := func(w http.ResponseWriter, r *http.Request) {
		apiErr := model.NovoErroRotaNaoEncontrada()
		escreverErro(w, http.StatusNotFound, apiErr.Message)
	}
	r.NotFound(rotaNaoEncontrada)
	r.MethodNotAllowed(rotaNaoEncontrada)

	return r
}
