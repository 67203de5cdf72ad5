package assessment

import "math"

// Score é o resumo imutável de uma rodada finalizada.
type Score struct {
	TotalTiles          int     `json:"total_tiles"`
	TotalTargets        int     `json:"total_targets"`
	CorrectlySelected   int     `json:"correctly_selected"`
	IncorrectlySelected int     `json:"incorrectly_selected"`
	MissedTargets       int     `json:"missed_targets"`
	TotalSelections     int     `json:"total_selections"`
	AccuracyPercent     float64 `json:"accuracy_percent"`
	ElapsedSeconds      int     `json:"elapsed_seconds"`
	TimeLimitSeconds    int     `json:"time_limit_seconds"`
}

// computeScore fecha a pontuação a partir das figuras, do conjunto de
// seleções e do tempo restante no momento da finalização.
func computeScore(tiles []Tile, selected map[string]bool, timeLimitSec, remainingSec int) Score {
	s := Score{
		TotalTiles:       len(tiles),
		TotalSelections:  len(selected),
		ElapsedSeconds:   timeLimitSec - remainingSec,
		TimeLimitSeconds: timeLimitSec,
	}
	for _, t := range tiles {
		if t.IsTarget {
			s.TotalTargets++
			if selected[t.ID] {
				s.CorrectlySelected++
			}
		} else if selected[t.ID] {
			s.IncorrectlySelected++
		}
	}
	s.MissedTargets = s.TotalTargets - s.CorrectlySelected
	if s.TotalTargets > 0 {
		pct := float64(s.CorrectlySelected) / float64(s.TotalTargets) * 100
		s.AccuracyPercent = math.Round(pct*10) / 10
	}
	return s
}
