package session

import (
	"context"
	"sync"
	"time"
)

// entrada guarda uma sessão com seu instante de expiração.
type entrada struct {
	dados    Dados
	expiraEm time.Time
}

// MemoriaStore é a implementação em memória de Store, com TTL fixo
// por sessão e uma varredura periódica que descarta as expiradas.
type MemoriaStore struct {
	mu       sync.RWMutex
	sessoes  map[string]entrada
	ttl      time.Duration
	agora    func() time.Time
	parar    chan struct{}
	pararUma sync.Once
}

// NewMemoriaStore cria um MemoriaStore com o TTL indicado.
// IniciarVarredura deve ser chamado para ativar a remoção periódica;
// sem ela as sessões expiradas ainda são rejeitadas na leitura, apenas
// ocupam memória até a próxima varredura.
func NewMemoriaStore(ttl time.Duration) *MemoriaStore {
	return &MemoriaStore{
		sessoes: make(map[string]entrada),
		ttl:     ttl,
		agora:   time.Now,
		parar:   make(chan struct{}),
	}
}

// Criar registra uma nova sessão e retorna o token gerado.
func (s *MemoriaStore) Criar(ctx context.Context, dados Dados) (string, error) {
	token, err := gerarToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessoes[token] = entrada{
		dados:    dados,
		expiraEm: s.agora().Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

// Buscar retorna os dados da sessão ou nil quando ausente ou expirada.
func (s *MemoriaStore) Buscar(ctx context.Context, token string) (*Dados, error) {
	s.mu.RLock()
	e, ok := s.sessoes[token]
	s.mu.RUnlock()

	if !ok || s.agora().After(e.expiraEm) {
		return nil, nil
	}

	dados := e.dados
	return &dados, nil
}

// Destruir remove a sessão do token indicado.
func (s *MemoriaStore) Destruir(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessoes, token)
	s.mu.Unlock()
	return nil
}

// DestruirPorUsuario remove todas as sessões do usuário indicado.
func (s *MemoriaStore) DestruirPorUsuario(ctx context.Context, usuarioID string) error {
	s.mu.Lock()
	for token, e := range s.sessoes {
		if e.dados.UsuarioID == usuarioID {
			delete(s.sessoes, token)
		}
	}
	s.mu.Unlock()
	return nil
}

// IniciarVarredura dispara a goroutine que remove sessões expiradas
// no intervalo indicado. Encerra quando Fechar é chamado.
func (s *MemoriaStore) IniciarVarredura(intervalo time.Duration) {
	go func() {
		ticker := time.NewTicker(intervalo)
		defer ticker.Stop()
		for {
			select {
			case <-s.parar:
				return
			case <-ticker.C:
				s.removerExpiradas()
			}
		}
	}()
}

// Fechar encerra a varredura periódica. Pode ser chamado mais de uma vez.
func (s *MemoriaStore) Fechar() {
	s.pararUma.Do(func() {
		close(s.parar)
	})
}

// removerExpiradas descarta todas as sessões já vencidas.
func (s *MemoriaStore) removerExpiradas() {
	agora := s.agora()

	s.mu.Lock()
	for token, e := range s.sessoes {
		if agora.After(e.expiraEm) {
			delete(s.sessoes, token)
		}
	}
	s.mu.Unlock()
}
