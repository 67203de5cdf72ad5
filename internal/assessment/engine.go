package assessment

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownTile = errors.New("figura desconhecida")

// Config parametriza uma rodada. Zero values caem nos padrões; Tick só é
// alterado em teste.
type Config struct {
	TotalTiles      int
	TypeCount       int
	SimpleTypeCount int
	TimeLimitSec    int
	Tick            time.Duration
}

func (c Config) withDefaults() Config {
	if c.TotalTiles <= 0 {
		c.TotalTiles = DefaultTotalTiles
	}
	if c.TypeCount <= 0 {
		c.TypeCount = DefaultTypeCount
	}
	if c.SimpleTypeCount <= 0 || c.SimpleTypeCount > c.TypeCount {
		c.SimpleTypeCount = DefaultSimpleTypeCount
		if c.SimpleTypeCount > c.TypeCount {
			c.SimpleTypeCount = c.TypeCount
		}
	}
	if c.TimeLimitSec <= 0 {
		c.TimeLimitSec = DefaultTimeLimitSec
	}
	if c.Tick <= 0 {
		c.Tick = time.Second
	}
	return c
}

// Run é uma rodada do teste em andamento. Eventos (tick do relógio, toque em
// figura, finalização manual) são serializados pelo mutex; depois de
// finalizada a rodada, novos eventos são ignorados em vez de virarem erro —
// a corrida entre o tick final e o toque do usuário é esperada.
type Run struct {
	ID         uuid.UUID
	TargetType int
	Tiles      []Tile
	StartedAt  time.Time

	cfg Config

	mu        sync.Mutex
	selected  map[string]bool
	tileIndex map[string]int
	remaining int
	finished  bool
	scored    bool
	score     Score
	done      chan struct{}

	// onFinish é chamado exatamente uma vez, em goroutine própria, quando a
	// rodada finaliza (timeout ou manual). É o ponto de entrega do resultado
	// ao armazenamento; falha de gravação nunca reabre a rodada.
	onFinish func(*Run, Score)
}

// NewRun gera a sequência embaralhada, sorteia o tipo modelo entre as
// figuras simples e inicia a contagem regressiva.
func NewRun(cfg Config, rng *rand.Rand, onFinish func(*Run, Score)) *Run {
	cfg = cfg.withDefaults()
	seq := GenerateSequence(cfg.TotalTiles, cfg.TypeCount, rng)
	target := rng.Intn(cfg.SimpleTypeCount)
	tiles := buildTiles(seq, target)

	r := &Run{
		ID:         uuid.New(),
		TargetType: target,
		Tiles:      tiles,
		StartedAt:  time.Now(),
		cfg:        cfg,
		selected:   make(map[string]bool),
		tileIndex:  make(map[string]int, len(tiles)),
		remaining:  cfg.TimeLimitSec,
		done:       make(chan struct{}),
		onFinish:   onFinish,
	}
	for i, t := range tiles {
		r.tileIndex[t.ID] = i
	}
	go r.countdown()
	return r
}

// countdown é o único relógio da rodada: um tick por segundo até zerar ou
// até a rodada ser finalizada/descartada.
func (r *Run) countdown() {
	tick := time.NewTicker(r.cfg.Tick)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			r.tick()
		case <-r.done:
			return
		}
	}
}

func (r *Run) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return
	}
	r.remaining--
	if r.remaining <= 0 {
		r.remaining = 0
		r.finalizeLocked()
	}
}

// Toggle alterna a seleção da figura e devolve o estado resultante.
// Depois de finalizada a rodada o evento é ignorado (estado corrente é
// devolvido sem alteração).
func (r *Run) Toggle(id string) (selected bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tileIndex[id]; !ok {
		return false, ErrUnknownTile
	}
	if r.finished {
		return r.selected[id], nil
	}
	if r.selected[id] {
		delete(r.selected, id)
		return false, nil
	}
	r.selected[id] = true
	return true, nil
}

// Finish encerra a rodada manualmente. Retorna a pontuação e se esta
// chamada foi a responsável pela finalização (false quando a rodada já
// tinha terminado — finalizar é idempotente).
func (r *Run) Finish() (Score, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return r.score, false
	}
	r.finalizeLocked()
	return r.score, true
}

// finalizeLocked computa a pontuação uma única vez, para o relógio e dispara
// a entrega do resultado. Chamado com o mutex em posse.
func (r *Run) finalizeLocked() {
	r.finished = true
	r.scored = true
	r.score = computeScore(r.Tiles, r.selected, r.cfg.TimeLimitSec, r.remaining)
	close(r.done)
	if r.onFinish != nil {
		go r.onFinish(r, r.score)
	}
}

// Close descarta a rodada sem finalizar (equivalente a fechar a tela),
// liberando a goroutine do relógio. Seguro chamar mais de uma vez.
func (r *Run) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished {
		return
	}
	r.finished = true
	close(r.done)
}

// Remaining devolve os segundos restantes.
func (r *Run) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Finished informa se a rodada já terminou.
func (r *Run) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

// Score devolve a pontuação e se ela já foi computada. Rodadas descartadas
// com Close nunca têm pontuação.
func (r *Run) Score() (Score, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score, r.scored
}

// Selected devolve uma cópia do conjunto de figuras marcadas.
func (r *Run) Selected() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.selected))
	for id := range r.selected {
		out = append(out, id)
	}
	return out
}

// TimeLimitSec devolve o limite de tempo configurado da rodada.
func (r *Run) TimeLimitSec() int {
	return r.cfg.TimeLimitSec
}
