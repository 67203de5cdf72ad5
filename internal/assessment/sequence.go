// Package assessment implementa o teste de atenção "encontre as figuras
// iguais ao modelo": geração da grade de estímulos, máquina de estados da
// aplicação (rodando → finalizado) com contagem regressiva, e o cálculo da
// pontuação final.
package assessment

import (
	"fmt"
	"math/rand"
)

// Parâmetros padrão da aplicação do teste.
const (
	DefaultTotalTiles = 180
	DefaultTypeCount  = 24
	// O modelo é sorteado só entre os primeiros tipos (figuras simples);
	// os demais são apenas distratores.
	DefaultSimpleTypeCount = 18
	DefaultTimeLimitSec    = 90
)

// Tile é uma figura da grade: posição fixa durante a rodada, tipo de
// estímulo e se corresponde ao modelo sorteado.
type Tile struct {
	ID       string `json:"id"`
	Type     int    `json:"type"`
	IsTarget bool   `json:"is_target"`
}

// GenerateSequence distribui total posições entre typeCount tipos da forma
// mais uniforme possível (floor(total/typeCount) por tipo, os primeiros
// total%typeCount tipos recebem um extra) e embaralha com Fisher–Yates.
// As duas etapas garantem contagem por tipo determinística com posições
// aleatórias; uma atribuição uniforme pura deixaria a densidade de alvos
// variável.
func GenerateSequence(total, typeCount int, rng *rand.Rand) []int {
	seq := make([]int, 0, total)
	per := total / typeCount
	extra := total % typeCount
	for typ := 0; typ < typeCount; typ++ {
		n := per
		if typ < extra {
			n++
		}
		for i := 0; i < n; i++ {
			seq = append(seq, typ)
		}
	}
	for i := len(seq) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
	return seq
}

// buildTiles materializa a sequência em figuras identificáveis, marcando as
// do tipo do modelo.
func buildTiles(seq []int, targetType int) []Tile {
	tiles := make([]Tile, len(seq))
	for i, typ := range seq {
		tiles[i] = Tile{
			ID:       fmt.Sprintf("img_%d", i),
			Type:     typ,
			IsTarget: typ == targetType,
		}
	}
	return tiles
}
