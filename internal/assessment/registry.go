package assessment

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry guarda as rodadas em andamento, indexadas pelo id. Rodadas
// abandonadas (tela fechada sem finalizar) são varridas depois de maxAge.
type Registry struct {
	mu      sync.Mutex
	runs    map[uuid.UUID]*Run
	maxAge  time.Duration
	rng     *rand.Rand
	onEvict func(uuid.UUID)
}

// NewRegistry cria o registro de rodadas. maxAge limita por quanto tempo uma
// rodada fica retida depois de criada (bem acima do limite do teste, para a
// tela ainda conseguir consultar o resultado).
func NewRegistry(maxAge time.Duration) *Registry {
	reg := &Registry{
		runs:   make(map[uuid.UUID]*Run),
		maxAge: maxAge,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	go reg.sweep()
	return reg
}

// OnEvict registra um callback disparado sempre que uma rodada sai do
// registro (varredura ou Drop), para quem mantém estado indexado pelo id.
func (reg *Registry) OnEvict(fn func(uuid.UUID)) {
	reg.mu.Lock()
	reg.onEvict = fn
	reg.mu.Unlock()
}

func (reg *Registry) sweep() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for range tick.C {
		reg.evictOlderThan(time.Now().Add(-reg.maxAge))
	}
}

func (reg *Registry) evictOlderThan(cutoff time.Time) {
	var evicted []uuid.UUID
	reg.mu.Lock()
	for id, r := range reg.runs {
		if r.StartedAt.Before(cutoff) {
			r.Close()
			delete(reg.runs, id)
			evicted = append(evicted, id)
		}
	}
	fn := reg.onEvict
	reg.mu.Unlock()
	if fn == nil {
		return
	}
	for _, id := range evicted {
		fn(id)
	}
}

// Start cria uma rodada nova e a registra.
func (reg *Registry) Start(cfg Config, onFinish func(*Run, Score)) *Run {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r := NewRun(cfg, reg.rng, onFinish)
	reg.runs[r.ID] = r
	return r
}

// Get devolve a rodada pelo id, se existir.
func (reg *Registry) Get(id uuid.UUID) (*Run, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.runs[id]
	return r, ok
}

// Drop descarta a rodada (tela fechada sem finalizar).
func (reg *Registry) Drop(id uuid.UUID) {
	reg.mu.Lock()
	r, ok := reg.runs[id]
	if ok {
		r.Close()
		delete(reg.runs, id)
	}
	fn := reg.onEvict
	reg.mu.Unlock()
	if ok && fn != nil {
		fn(id)
	}
}
