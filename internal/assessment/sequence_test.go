package assessment

import (
	"math/rand"
	"testing"
)

func TestGenerateSequenceBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seq := GenerateSequence(180, 24, rng)
	if len(seq) != 180 {
		t.Fatalf("len = %d, want 180", len(seq))
	}
	counts := make(map[int]int)
	for _, typ := range seq {
		counts[typ]++
	}
	if len(counts) != 24 {
		t.Fatalf("tipos presentes = %d, want 24", len(counts))
	}
	// 180/24 = 7, resto 12: primeiros 12 tipos com 8, demais com 7.
	total := 0
	for typ := 0; typ < 24; typ++ {
		want := 7
		if typ < 12 {
			want = 8
		}
		if counts[typ] != want {
			t.Fatalf("tipo %d: %d figuras, want %d", typ, counts[typ], want)
		}
		total += counts[typ]
	}
	if total != 180 {
		t.Fatalf("soma = %d, want 180", total)
	}
}

func TestGenerateSequenceCountIsDeterministic(t *testing.T) {
	// A contagem por tipo não depende do embaralhamento.
	for seed := int64(0); seed < 5; seed++ {
		seq := GenerateSequence(180, 24, rand.New(rand.NewSource(seed)))
		counts := make(map[int]int)
		for _, typ := range seq {
			counts[typ]++
		}
		for typ, n := range counts {
			if n != 7 && n != 8 {
				t.Fatalf("seed %d tipo %d: %d figuras", seed, typ, n)
			}
		}
	}
}

func TestGenerateSequenceSmallCatalog(t *testing.T) {
	seq := GenerateSequence(10, 3, rand.New(rand.NewSource(7)))
	counts := make(map[int]int)
	for _, typ := range seq {
		counts[typ]++
	}
	// 10/3 = 3, resto 1: tipo 0 com 4, tipos 1 e 2 com 3.
	if counts[0] != 4 || counts[1] != 3 || counts[2] != 3 {
		t.Fatalf("distribuição = %v", counts)
	}
}

func TestBuildTilesMarksTargets(t *testing.T) {
	seq := []int{0, 1, 0, 2}
	tiles := buildTiles(seq, 0)
	if len(tiles) != 4 {
		t.Fatalf("len = %d", len(tiles))
	}
	wantTarget := []bool{true, false, true, false}
	for i, tile := range tiles {
		if tile.IsTarget != wantTarget[i] {
			t.Fatalf("tile %d IsTarget = %v", i, tile.IsTarget)
		}
		if tile.ID != tiles[i].ID || tile.ID == "" {
			t.Fatalf("tile %d sem id", i)
		}
	}
	if tiles[0].ID == tiles[1].ID {
		t.Fatal("ids devem ser únicos")
	}
}
