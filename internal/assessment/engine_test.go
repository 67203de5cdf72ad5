package assessment

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

// slowConfig mantém o relógio real fora do caminho do teste.
func slowConfig() Config {
	return Config{Tick: time.Hour}
}

func TestComputeScore(t *testing.T) {
	// 20 figuras alvo, 15 marcadas; 5 distratores também marcados.
	var tiles []Tile
	selected := make(map[string]bool)
	for i := 0; i < 20; i++ {
		tiles = append(tiles, Tile{ID: idFor(i), Type: 0, IsTarget: true})
		if i < 15 {
			selected[idFor(i)] = true
		}
	}
	for i := 20; i < 40; i++ {
		tiles = append(tiles, Tile{ID: idFor(i), Type: 1})
		if i < 25 {
			selected[idFor(i)] = true
		}
	}
	s := computeScore(tiles, selected, 90, 30)
	if s.TotalTargets != 20 {
		t.Fatalf("TotalTargets = %d", s.TotalTargets)
	}
	if s.CorrectlySelected != 15 {
		t.Fatalf("CorrectlySelected = %d", s.CorrectlySelected)
	}
	if s.IncorrectlySelected != 5 {
		t.Fatalf("IncorrectlySelected = %d", s.IncorrectlySelected)
	}
	if s.MissedTargets != 5 {
		t.Fatalf("MissedTargets = %d", s.MissedTargets)
	}
	if s.TotalSelections != 20 {
		t.Fatalf("TotalSelections = %d", s.TotalSelections)
	}
	if s.AccuracyPercent != 75.0 {
		t.Fatalf("AccuracyPercent = %v", s.AccuracyPercent)
	}
	if s.ElapsedSeconds != 60 {
		t.Fatalf("ElapsedSeconds = %d", s.ElapsedSeconds)
	}
}

func idFor(i int) string {
	return fmt.Sprintf("img_%d", i)
}

func TestComputeScoreNoTargets(t *testing.T) {
	tiles := []Tile{{ID: "a"}, {ID: "b"}}
	s := computeScore(tiles, map[string]bool{"a": true}, 90, 90)
	if s.AccuracyPercent != 0 {
		t.Fatalf("AccuracyPercent = %v, want 0", s.AccuracyPercent)
	}
	if s.IncorrectlySelected != 1 {
		t.Fatalf("IncorrectlySelected = %d", s.IncorrectlySelected)
	}
}

func TestRunTargetFromSimpleTypes(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		r := NewRun(slowConfig(), rand.New(rand.NewSource(seed)), nil)
		if r.TargetType < 0 || r.TargetType >= DefaultSimpleTypeCount {
			t.Fatalf("seed %d: modelo %d fora da faixa simples", seed, r.TargetType)
		}
		targets := 0
		for _, tile := range r.Tiles {
			if tile.IsTarget {
				targets++
			}
		}
		// 180/24 = 7, os 12 primeiros tipos recebem 8.
		want := 7
		if r.TargetType < 12 {
			want = 8
		}
		if targets != want {
			t.Fatalf("seed %d: %d alvos, want %d", seed, targets, want)
		}
		r.Close()
	}
}

func TestToggle(t *testing.T) {
	r := NewRun(slowConfig(), rand.New(rand.NewSource(3)), nil)
	defer r.Close()

	id := r.Tiles[0].ID
	sel, err := r.Toggle(id)
	if err != nil || !sel {
		t.Fatalf("Toggle: sel=%v err=%v", sel, err)
	}
	sel, err = r.Toggle(id)
	if err != nil || sel {
		t.Fatalf("Toggle de novo: sel=%v err=%v", sel, err)
	}
	if _, err := r.Toggle("img_999999"); err != ErrUnknownTile {
		t.Fatalf("esperava ErrUnknownTile, veio %v", err)
	}
}

func TestFinishIdempotent(t *testing.T) {
	var calls int32
	done := make(chan Score, 2)
	r := NewRun(slowConfig(), rand.New(rand.NewSource(5)), func(_ *Run, s Score) {
		atomic.AddInt32(&calls, 1)
		done <- s
	})

	for _, tile := range r.Tiles[:10] {
		if _, err := r.Toggle(tile.ID); err != nil {
			t.Fatal(err)
		}
	}

	first, finalized := r.Finish()
	if !finalized {
		t.Fatal("primeira finalização deveria valer")
	}
	second, finalized := r.Finish()
	if finalized {
		t.Fatal("segunda finalização não pode recomputar")
	}
	if first != second {
		t.Fatalf("pontuações divergem: %+v != %+v", first, second)
	}

	// Tick atrasado depois de finalizada: ignorado.
	r.tick()
	if got := r.Remaining(); got != first.TimeLimitSeconds-first.ElapsedSeconds {
		t.Fatalf("tick pós-finalização alterou o relógio: %d", got)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onFinish não foi chamado")
	}
	select {
	case <-done:
		t.Fatal("onFinish chamado mais de uma vez")
	case <-time.After(50 * time.Millisecond):
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("onFinish chamado %d vezes", n)
	}
}

func TestToggleAfterFinishIgnored(t *testing.T) {
	r := NewRun(slowConfig(), rand.New(rand.NewSource(9)), nil)
	id := r.Tiles[0].ID
	if _, err := r.Toggle(id); err != nil {
		t.Fatal(err)
	}
	r.Finish()

	sel, err := r.Toggle(id)
	if err != nil {
		t.Fatalf("toggle pós-finalização deve ser ignorado, veio erro %v", err)
	}
	if !sel {
		t.Fatal("seleção não pode mudar depois de finalizada")
	}
	s, ok := r.Score()
	if !ok || s.TotalSelections != 1 {
		t.Fatalf("pontuação mudou: %+v ok=%v", s, ok)
	}
}

func TestTimeoutFinalizes(t *testing.T) {
	done := make(chan Score, 1)
	cfg := Config{TimeLimitSec: 2, Tick: time.Millisecond}
	r := NewRun(cfg, rand.New(rand.NewSource(11)), func(_ *Run, s Score) { done <- s })

	select {
	case s := <-done:
		if s.ElapsedSeconds != cfg.TimeLimitSec {
			t.Fatalf("ElapsedSeconds = %d, want %d", s.ElapsedSeconds, cfg.TimeLimitSec)
		}
		if r.Remaining() != 0 {
			t.Fatalf("Remaining = %d", r.Remaining())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout não finalizou a rodada")
	}
}

func TestConcurrentTogglesAndFinish(t *testing.T) {
	r := NewRun(slowConfig(), rand.New(rand.NewSource(13)), nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = r.Toggle(r.Tiles[(i*50+j)%len(r.Tiles)].ID)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Finish()
	}()
	wg.Wait()
	if !r.Finished() {
		t.Fatal("rodada deveria estar finalizada")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(time.Hour)
	r := reg.Start(slowConfig(), nil)
	got, ok := reg.Get(r.ID)
	if !ok || got != r {
		t.Fatal("rodada não registrada")
	}
	reg.Drop(r.ID)
	if _, ok := reg.Get(r.ID); ok {
		t.Fatal("rodada deveria ter sido descartada")
	}
	if _, scored := r.Score(); scored {
		t.Fatal("rodada descartada não pode ter pontuação")
	}
}

func TestRegistryEvictionCallback(t *testing.T) {
	reg := NewRegistry(time.Hour)
	var evicted []uuid.UUID
	reg.OnEvict(func(id uuid.UUID) { evicted = append(evicted, id) })

	dropped := reg.Start(slowConfig(), nil)
	reg.Drop(dropped.ID)
	if len(evicted) != 1 || evicted[0] != dropped.ID {
		t.Fatalf("Drop não notificou a remoção: %v", evicted)
	}

	// Varredura: cutoff no futuro apanha qualquer rodada já criada.
	swept := reg.Start(slowConfig(), nil)
	reg.evictOlderThan(time.Now().Add(time.Hour))
	if _, ok := reg.Get(swept.ID); ok {
		t.Fatal("rodada deveria ter sido varrida")
	}
	if len(evicted) != 2 || evicted[1] != swept.ID {
		t.Fatalf("varredura não notificou a remoção: %v", evicted)
	}
}
