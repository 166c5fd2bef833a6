package taxas

import (
	"context"
	"sync"
)

// repoMemoria é um Repositorio em memória para os testes.
type repoMemoria struct {
	mu     sync.Mutex
	cfg    Configuracao
	err    error
	cargas int
	salvos int
}

func (r *repoMemoria) Carregar(context.Context) (Configuracao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cargas++
	return r.cfg, r.err
}

func (r *repoMemoria) Salvar(_ context.Context, cfg Configuracao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.salvos++
	r.cfg = cfg
	return nil
}

func (r *repoMemoria) totalCargas() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cargas
}
