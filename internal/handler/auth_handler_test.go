package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rafaelgpo/microblog/internal/metrics"
	"github.com/rafaelgpo/microblog/internal/middleware"
	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/session"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Run()
}

func coletorDeTeste() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}

type mockAuthService struct {
	loginFn  func(ctx context.Context, email, senha string) (*model.Usuario, string, error)
	logoutFn func(ctx context.Context, token string) error
}

func (m *mockAuthService) Login(ctx context.Context, email, senha string) (*model.Usuario, string, error) {
	return m.loginFn(ctx, email, senha)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.logoutFn(ctx, token)
}

// TestLogin_Sucesso verifica o envelope de sucesso e o cookie HTTP
// Only de sessão.
func TestLogin_Sucesso(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, senha string) (*model.Usuario, string, error) {
			return &model.Usuario{Nome: "Rafael", Email: email, Ativo: true}, "token-abc", nil
		},
	}
	h := NewAuthHandler(svc, AuthHandlerConfig{SessionMaxAge: 86400}, coletorDeTeste())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@a.com","senha":"123456"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var corpo map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &corpo); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if corpo["mensagem"] != "Login realizado com sucesso!" {
		t.Errorf("mensagem = %v", corpo["mensagem"])
	}
	usuario, ok := corpo["usuario"].(map[string]any)
	if !ok {
		t.Fatal("usuario ausente do envelope")
	}
	if _, temSenha := usuario["senha"]; temSenha {
		t.Error("resposta não deve conter a senha")
	}

	cookies := w.Result().Cookies()
	var sessao *http.Cookie
	for _, c := range cookies {
		if c.Name == middleware.NomeCookieSessao {
			sessao = c
		}
	}
	if sessao == nil {
		t.Fatal("cookie de sessão ausente")
	}
	if sessao.Value != "token-abc" {
		t.Errorf("valor do cookie = %q", sessao.Value)
	}
	if !sessao.HttpOnly {
		t.Error("cookie de sessão deve ser HTTP Only")
	}
	if sessao.MaxAge != 86400 {
		t.Errorf("MaxAge = %d, want 86400", sessao.MaxAge)
	}
}

// TestLogin_CamposObrigatorios verifica o 400 quando email ou senha
// faltam no corpo.
func TestLogin_CamposObrigatorios(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, AuthHandlerConfig{}, coletorDeTeste())

	casos := []string{
		`{}`,
		`{"email":"a@a.com"}`,
		`{"senha":"123456"}`,
		``,
	}
	for _, corpo := range casos {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(corpo))
		w := httptest.NewRecorder()

		h.Login(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("corpo %q: status = %d, want %d", corpo, w.Code, http.StatusBadRequest)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("corpo não é JSON: %v", err)
		}
		if resp["erro"] != "Email e senha são obrigatórios" {
			t.Errorf("erro = %q", resp["erro"])
		}
	}
}

// TestLogin_JSONMalformado verifica o 400 de corpo inválido.
func TestLogin_JSONMalformado(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, AuthHandlerConfig{}, coletorDeTeste())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if resp["erro"] != "JSON inválido" {
		t.Errorf("erro = %q", resp["erro"])
	}
}

// TestLogin_CredenciaisInvalidas verifica o 401 com a mensagem
// uniforme de credenciais.
func TestLogin_CredenciaisInvalidas(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, senha string) (*model.Usuario, string, error) {
			return nil, "", model.NovoErroCredenciaisInvalidas()
		},
	}
	h := NewAuthHandler(svc, AuthHandlerConfig{}, coletorDeTeste())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@a.com","senha":"errada"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if resp["erro"] != "Email ou senha inválidos" {
		t.Errorf("erro = %q", resp["erro"])
	}
}

// TestLogout_ExpiraCookie verifica o encerramento da sessão e a
// expiração do cookie.
func TestLogout_ExpiraCookie(t *testing.T) {
	var tokenRecebido string
	svc := &mockAuthService{
		logoutFn: func(ctx context.Context, token string) error {
			tokenRecebido = token
			return nil
		},
	}
	h := NewAuthHandler(svc, AuthHandlerConfig{}, coletorDeTeste())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.NomeCookieSessao, Value: "token-abc"})
	w := httptest.NewRecorder()

	h.Logout(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if tokenRecebido != "token-abc" {
		t.Errorf("token repassado = %q", tokenRecebido)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if resp["mensagem"] != "Logout realizado com sucesso!" {
		t.Errorf("mensagem = %q", resp["mensagem"])
	}

	var expirado *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.NomeCookieSessao {
			expirado = c
		}
	}
	if expirado == nil || expirado.MaxAge != -1 {
		t.Error("cookie de sessão deveria ser expirado")
	}
}

// TestSessao_Autenticado verifica o envelope com os dados da sessão.
func TestSessao_Autenticado(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, AuthHandlerConfig{}, coletorDeTeste())

	req := httptest.NewRequest(http.MethodGet, "/auth/sessao", nil)
	ctx := middleware.ContextoComSessao(req.Context(), &session.Dados{
		UsuarioID:    "abc",
		UsuarioNome:  "Rafael",
		UsuarioEmail: "a@a.com",
	})
	w := httptest.NewRecorder()

	h.Sessao(w, req.WithContext(ctx))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if resp["autenticado"] != true {
		t.Errorf("autenticado = %v", resp["autenticado"])
	}
	usuario, _ := resp["usuario"].(map[string]any)
	if usuario["email"] != "a@a.com" {
		t.Errorf("email = %v", usuario["email"])
	}
}

// TestSessao_NaoAutenticado verifica o 401 informativo sem sessão.
func TestSessao_NaoAutenticado(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, AuthHandlerConfig{}, coletorDeTeste())

	req := httptest.NewRequest(http.MethodGet, "/auth/sessao", nil)
	w := httptest.NewRecorder()

	h.Sessao(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if resp["autenticado"] != false {
		t.Errorf("autenticado = %v", resp["autenticado"])
	}
	if resp["mensagem"] != "Usuário não autenticado" {
		t.Errorf("mensagem = %v", resp["mensagem"])
	}
}
