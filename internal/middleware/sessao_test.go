package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafaelgpo/microblog/internal/session"
)

func handlerQueExpoeSessao(t *testing.T, capturada **session.Dados) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if dados, ok := SessaoDoContexto(r.Context()); ok {
			*capturada = dados
		}
		w.WriteHeader(http.StatusOK)
	})
}

// TestAnexarSessao_ComCookieValido verifica que uma sessão válida é
// injetada no contexto da requisição.
func TestAnexarSessao_ComCookieValido(t *testing.T) {
	store := session.NewMemoriaStore(time.Hour)
	defer store.Fechar()

	token, err := store.Criar(context.Background(), session.Dados{
		UsuarioID:    "abc",
		UsuarioEmail: "rafael@exemplo.com",
		UsuarioNome:  "Rafael",
	})
	if err != nil {
		t.Fatalf("falha ao criar sessão: %v", err)
	}

	var capturada *session.Dados
	handler := NewAnexarSessaoMiddleware(store)(handlerQueExpoeSessao(t, &capturada))

	req := httptest.NewRequest(http.MethodGet, "/postagens", nil)
	req.AddCookie(&http.Cookie{Name: NomeCookieSessao, Value: token})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if capturada == nil {
		t.Fatal("sessão não foi injetada no contexto")
	}
	if capturada.UsuarioEmail != "rafael@exemplo.com" {
		t.Errorf("email = %q", capturada.UsuarioEmail)
	}
}

// TestAnexarSessao_SemCookie verifica que a requisição segue sem
// sessão no contexto e não é bloqueada.
func TestAnexarSessao_SemCookie(t *testing.T) {
	store := session.NewMemoriaStore(time.Hour)
	defer store.Fechar()

	var capturada *session.Dados
	handler := NewAnexarSessaoMiddleware(store)(handlerQueExpoeSessao(t, &capturada))

	req := httptest.NewRequest(http.MethodGet, "/postagens", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if capturada != nil {
		t.Error("não deveria haver sessão no contexto")
	}
}

// TestAnexarSessao_TokenDesconhecido verifica que um token inválido
// não injeta sessão nem bloqueia a requisição.
func TestAnexarSessao_TokenDesconhecido(t *testing.T) {
	store := session.NewMemoriaStore(time.Hour)
	defer store.Fechar()

	var capturada *session.Dados
	handler := NewAnexarSessaoMiddleware(store)(handlerQueExpoeSessao(t, &capturada))

	req := httptest.NewRequest(http.MethodGet, "/postagens", nil)
	req.AddCookie(&http.Cookie{Name: NomeCookieSessao, Value: "token-inexistente"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if capturada != nil {
		t.Error("não deveria haver sessão no contexto")
	}
}

// TestExigirAutenticacao_SemSessao verifica o bloqueio 401 com a
// mensagem unificada de acesso negado.
func TestExigirAutenticacao_SemSessao(t *testing.T) {
	handler := NewExigirAutenticacao()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler protegido não deveria ser alcançado")
	}))

	req := httptest.NewRequest(http.MethodPost, "/postagens", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var corpo map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &corpo); err != nil {
		t.Fatalf("corpo não é JSON: %v", err)
	}
	if corpo["erro"] != "Acesso negado. Você precisa estar autenticado para acessar este recurso." {
		t.Errorf("erro = %q", corpo["erro"])
	}
}

// TestExigirAutenticacao_ComSessao verifica a passagem da requisição
// autenticada.
func TestExigirAutenticacao_ComSessao(t *testing.T) {
	alcancado := false
	handler := NewExigirAutenticacao()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		alcancado = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/postagens", nil)
	ctx := ContextoComSessao(req.Context(), &session.Dados{UsuarioID: "abc"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req.WithContext(ctx))

	if !alcancado {
		t.Error("handler protegido deveria ser alcançado")
	}
}

// TestSessaoDoContexto_Vazio verifica o comportamento sem sessão.
func TestSessaoDoContexto_Vazio(t *testing.T) {
	if _, ok := SessaoDoContexto(context.Background()); ok {
		t.Error("contexto vazio não deveria ter sessão")
	}
}
