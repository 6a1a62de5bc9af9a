package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/rafaelgpo/microblog/internal/model"
	"github.com/rafaelgpo/microblog/internal/session"
)

// --- Mocks ---

type mockUsuarioRepo struct {
	buscarPorEmailFn func(ctx context.Context, email string) (*model.Usuario, error)
}

func (m *mockUsuarioRepo) Criar(ctx context.Context, usuario *model.Usuario) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}
func (m *mockUsuarioRepo) BuscarPorEmail(ctx context.Context, email string) (*model.Usuario, error) {
	return m.buscarPorEmailFn(ctx, email)
}
func (m *mockUsuarioRepo) BuscarPorID(ctx context.Context, id primitive.ObjectID) (*model.Usuario, error) {
	return nil, nil
}
func (m *mockUsuarioRepo) ListarTodos(ctx context.Context) ([]*model.Usuario, error) {
	return nil, nil
}
func (m *mockUsuarioRepo) Deletar(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (m *mockUsuarioRepo) Existe(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return false, nil
}

// usuarioComSenha monta um usuário persistido com hash bcrypt da senha.
func usuarioComSenha(t *testing.T, senha string, ativo bool) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("falha ao gerar hash: %v", err)
	}
	return &model.Usuario{
		ID:    primitive.NewObjectID(),
		Nome:  "Ana",
		Email: "ana@exemplo.com",
		Senha: string(hash),
		Ativo: ativo,
	}
}

// --- Testes ---

// TestService_Autenticar_Sucesso aceita credenciais corretas.
func TestService_Autenticar_Sucesso(t *testing.T) {
	repo := &mockUsuarioRepo{
		buscarPorEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return usuarioComSenha(t, "123456", true), nil
		},
	}
	svc := NewService(repo, session.NewMemoriaStore(time.Hour))

	usuario, err := svc.Autenticar(context.Background(), "ana@exemplo.com", "123456")
	if err != nil {
		t.Fatalf("Autenticar() = %v", err)
	}
	if usuario.Email != "ana@exemplo.com" {
		t.Errorf("Email = %q", usuario.Email)
	}
}

// TestService_Autenticar_MesmaMensagem garante resistência a enumeração:
// email desconhecido e senha incorreta retornam exatamente o mesmo erro.
func TestService_Autenticar_MesmaMensagem(t *testing.T) {
	emailDesconhecido := &mockUsuarioRepo{
		buscarPorEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return nil, nil
		},
	}
	senhaErrada := &mockUsuarioRepo{
		buscarPorEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return usuarioComSenha(t, "123456", true), nil
		},
	}

	svc1 := NewService(emailDesconhecido, session.NewMemoriaStore(time.Hour))
	_, err1 := svc1.Autenticar(context.Background(), "nao@existe.com", "qualquer")

	svc2 := NewService(senhaErrada, session.NewMemoriaStore(time.Hour))
	_, err2 := svc2.Autenticar(context.Background(), "ana@exemplo.com", "senha-errada")

	var apiErr1, apiErr2 *model.APIError
	if !errors.As(err1, &apiErr1) || !errors.As(err2, &apiErr2) {
		t.Fatalf("esperado *APIError nos dois casos: %v / %v", err1, err2)
	}
	if apiErr1.Code != model.ErrCodeCredenciaisInvalidas {
		t.Errorf("Code = %q", apiErr1.Code)
	}
	if apiErr1.Message != apiErr2.Message || apiErr1.Code != apiErr2.Code {
		t.Errorf("mensagens divergentes: %q vs %q", apiErr1.Message, apiErr2.Message)
	}
}

// TestService_Autenticar_Inativo rejeita conta desativada com erro próprio.
func TestService_Autenticar_Inativo(t *testing.T) {
	repo := &mockUsuarioRepo{
		buscarPorEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return usuarioComSenha(t, "123456", false), nil
		},
	}
	svc := NewService(repo, session.NewMemoriaStore(time.Hour))

	_, err := svc.Autenticar(context.Background(), "ana@exemplo.com", "123456")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("esperado *APIError, veio %v", err)
	}
	if apiErr.Code != model.ErrCodeUsuarioInativo {
		t.Errorf("Code = %q, esperado %q", apiErr.Code, model.ErrCodeUsuarioInativo)
	}
	if apiErr.Message != "Usuário inativo" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

// TestService_Login cria a sessão com a identidade em cache e limpa a senha.
func TestService_Login(t *testing.T) {
	guardado := usuarioComSenha(t, "123456", true)
	repo := &mockUsuarioRepo{
		buscarPorEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return guardado, nil
		},
	}
	store := session.NewMemoriaStore(time.Hour)
	svc := NewService(repo, store)

	usuario, token, err := svc.Login(context.Background(), "ana@exemplo.com", "123456")
	if err != nil {
		t.Fatalf("Login() = %v", err)
	}
	if token == "" {
		t.Fatal("esperado token de sessão")
	}
	if usuario.Senha != "" {
		t.Error("usuário retornado não pode conter a credencial")
	}

	dados, err := store.Buscar(context.Background(), token)
	if err != nil || dados == nil {
		t.Fatalf("sessão não encontrada: %v", err)
	}
	if dados.UsuarioID != guardado.ID.Hex() {
		t.Errorf("UsuarioID = %q, esperado %q", dados.UsuarioID, guardado.ID.Hex())
	}
	if dados.UsuarioNome != "Ana" || dados.UsuarioEmail != "ana@exemplo.com" {
		t.Errorf("dados = %+v", dados)
	}
}

// TestService_LoginFalhaNaoCriaSessao não deixa sessão para credencial inválida.
func TestService_LoginFalhaNaoCriaSessao(t *testing.T) {
	repo := &mockUsuarioRepo{
		buscarPorEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return nil, nil
		},
	}
	store := session.NewMemoriaStore(time.Hour)
	svc := NewService(repo, store)

	_, token, err := svc.Login(context.Background(), "nao@existe.com", "123456")
	if err == nil {
		t.Fatal("Login() deveria falhar")
	}
	if token != "" {
		t.Error("não deveria haver token em falha de login")
	}
}

// TestService_LogoutEVerificarSessao cobre o ciclo completo da sessão.
func TestService_LogoutEVerificarSessao(t *testing.T) {
	repo := &mockUsuarioRepo{
		buscarPorEmailFn: func(ctx context.Context, email string) (*model.Usuario, error) {
			return usuarioComSenha(t, "123456", true), nil
		},
	}
	store := session.NewMemoriaStore(time.Hour)
	svc := NewService(repo, store)
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "ana@exemplo.com", "123456")
	if err != nil {
		t.Fatalf("Login() = %v", err)
	}

	dados, err := svc.VerificarSessao(ctx, token)
	if err != nil || dados == nil {
		t.Fatalf("VerificarSessao() = %v, %v", dados, err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout() = %v", err)
	}

	dados, err = svc.VerificarSessao(ctx, token)
	if err != nil {
		t.Fatalf("VerificarSessao() = %v", err)
	}
	if dados != nil {
		t.Error("sessão deveria ter sido destruída no logout")
	}

	// token vazio nunca é sessão válida
	dados, _ = svc.VerificarSessao(ctx, "")
	if dados != nil {
		t.Error("token vazio não pode ter sessão")
	}
}
