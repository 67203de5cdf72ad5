package validate

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	cases := []struct {
		birth string
		now   time.Time
		want  int
	}{
		{"2015-05-15", date(2024, 3, 15), 8}, // aniversário ainda não chegou
		{"2015-05-15", date(2024, 5, 15), 9}, // no dia
		{"2015-05-15", date(2024, 5, 14), 8}, // véspera
		{"2015-05-15", date(2024, 6, 1), 9},
		{"2024-01-01", date(2024, 3, 15), 0},
	}
	for _, c := range cases {
		got, err := Age(c.birth, c.now)
		if err != nil {
			t.Fatalf("Age(%q): %v", c.birth, err)
		}
		if got != c.want {
			t.Fatalf("Age(%q, %s) = %d, want %d", c.birth, c.now.Format("2006-01-02"), got, c.want)
		}
	}
	if _, err := Age("invalida", date(2024, 3, 15)); err == nil {
		t.Fatal("esperava erro para data inválida")
	}
}

func TestDetailedAge(t *testing.T) {
	cases := []struct {
		birth string
		now   time.Time
		want  string
	}{
		{"2015-05-15", date(2024, 3, 15), "8 anos e 10 meses"},
		{"2024-03-15", date(2024, 3, 15), "0 dias"},
		{"2024-03-14", date(2024, 3, 15), "1 dia"},
		{"2024-02-15", date(2024, 3, 15), "1 mês"},
		{"2023-03-15", date(2024, 3, 15), "1 ano"},
		{"2022-01-10", date(2024, 3, 15), "2 anos e 2 meses e 5 dias"},
		// Empréstimo de dias: 2024-02-20 → 2024-03-15, fevereiro de 2024 tem 29 dias.
		{"2024-02-20", date(2024, 3, 15), "24 dias"},
		// Empréstimo de mês e de ano encadeados.
		{"2023-12-20", date(2024, 1, 15), "26 dias"},
		{"", date(2024, 3, 15), "N/A"},
		{"nao-e-data", date(2024, 3, 15), "Data inválida"},
	}
	for _, c := range cases {
		if got := DetailedAge(c.birth, c.now); got != c.want {
			t.Fatalf("DetailedAge(%q, %s) = %q, want %q", c.birth, c.now.Format("2006-01-02"), got, c.want)
		}
	}
}
