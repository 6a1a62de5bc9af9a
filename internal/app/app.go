// Package app faz a inicialização e o ciclo de vida da aplicação.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rafaelgpo/microblog/internal/auth"
	"github.com/rafaelgpo/microblog/internal/comentario"
	"github.com/rafaelgpo/microblog/internal/config"
	"github.com/rafaelgpo/microblog/internal/database"
	"github.com/rafaelgpo/microblog/internal/handler"
	"github.com/rafaelgpo/microblog/internal/logger"
	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/postagem"
	"github.com/rafaelgpo/microblog/internal/repository"
	"github.com/rafaelgpo/microblog/internal/security"
	"github.com/rafaelgpo/microblog/internal/session"
	"github.com/rafaelgpo/microblog/internal/usuario"
	"github.com/rafaelgpo/microblog/internal/worker/limpeza"
)

// Init inicializa a aplicação: configura o log JSON estruturado e
// carrega a Config das variáveis de ambiente.
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar configuração: %w", err)
	}

	return cfg, nil
}

// Run é o ponto de entrada da aplicação. Resolve o subcomando dos
// argumentos e inicia o modo correspondente. args recebe os.Args[1:].
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck é leve e dispensa a inicialização completa
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "3000"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("falha na inicialização: %w", err)
	}

	slog.Info("iniciando aplicação",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("database", cfg.DatabaseName),
	)

	switch cmd {
	case CommandWorker:
		return runWorker(cfg)
	default:
		return runServe(cfg)
	}
}

// conectarBanco abre a conexão com o MongoDB. Uma falha aqui é fatal:
// a aplicação não sobe sem banco.
func conectarBanco(cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Conectar(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao conectar ao banco: %w", err)
	}

	slog.Info("conexão com o banco estabelecida")
	return client, client.Database(cfg.DatabaseName), nil
}

// runServe inicia o servidor da API: conecta ao banco, monta as
// dependências e serve HTTP até receber SIGINT ou SIGTERM, quando faz
// o shutdown gracioso.
func runServe(cfg *config.Config) error {
	client, db, err := conectarBanco(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Desconectar(client); err != nil {
			slog.Error("falha ao desconectar do banco", slog.String("error", err.Error()))
		}
	}()

	// Repositórios
	usuarioRepo := repository.NewMongoUsuarioRepo(db)
	postagemRepo := repository.NewMongoPostagemRepo(db)
	comentarioRepo := repository.NewMongoComentarioRepo(db)

	// Sessões em memória com expiração por TTL
	sessoes := session.NewMemoriaStore(cfg.SessionMaxAge)
	sessoes.IniciarVarredura(10 * time.Minute)
	defer sessoes.Fechar()

	// Serviços
	sanitizador := security.NewSanitizadorConteudo()
	authService := auth.NewService(usuarioRepo, sessoes)
	usuarioService := usuario.NewService(usuarioRepo, sessoes, cfg.BcryptCost)
	postagemService := postagem.NewService(postagemRepo, usuarioRepo, comentarioRepo, sanitizador)
	comentarioService := comentario.NewService(comentarioRepo, postagemRepo, usuarioRepo, sanitizador)

	// Observabilidade
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	deps := &handler.RouterDeps{
		Sessoes:           sessoes,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:            slog.Default(),

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: int(cfg.SessionMaxAge.Seconds()),
		},
		UsuarioService:    usuarioService,
		PostagemService:   postagemService,
		ComentarioService: comentarioService,

		Metrics:  collector,
		Gatherer: registry,

		PingBanco: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("servidor da API iniciando", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("falha no listen do servidor", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("encerrando o servidor da API...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("falha no shutdown do servidor: %w", err)
	}

	slog.Info("servidor da API encerrado")
	return nil
}

// runWorker inicia a varredura periódica de comentários órfãos.
// Encerra ao receber SIGINT ou SIGTERM.
func runWorker(cfg *config.Config) error {
	client, db, err := conectarBanco(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Desconectar(client); err != nil {
			slog.Error("falha ao desconectar do banco", slog.String("error", err.Error()))
		}
	}()

	comentarioRepo := repository.NewMongoComentarioRepo(db)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	varredura := limpeza.NewVarredura(comentarioRepo, slog.Default(), collector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("encerrando o worker...")
		cancel()
	}()

	slog.Info("worker iniciando", slog.Duration("intervalo", cfg.LimpezaInterval))

	varredura.Iniciar(ctx, cfg.LimpezaInterval)

	slog.Info("worker encerrado")
	return nil
}

// runHealthcheck consulta /health de um servidor local em execução.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("healthcheck falhou: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck retornou status %d", resp.StatusCode)
	}

	return nil
}
