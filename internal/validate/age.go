package validate

import (
	"fmt"
	"strings"
	"time"
)

// Age retorna a idade em anos completos entre birthISO (AAAA-MM-DD) e now.
func Age(birthISO string, now time.Time) (int, error) {
	birth, err := time.Parse("2006-01-02", birthISO)
	if err != nil {
		return 0, ErrInvalidDate
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, nil
}

// DetailedAge retorna a idade por extenso em anos, meses e dias, com
// empréstimo de calendário: dias negativos tomam um mês emprestado (com a
// quantidade real de dias do mês anterior), meses negativos tomam um ano.
// Componentes zerados são omitidos; tudo zero vira "0 dias"; data que não
// parseia vira "Data inválida"; vazio vira "N/A".
func DetailedAge(birthISO string, now time.Time) string {
	if birthISO == "" {
		return "N/A"
	}
	birth, err := time.Parse("2006-01-02", birthISO)
	if err != nil {
		return "Data inválida"
	}

	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())
	days := now.Day() - birth.Day()

	if days < 0 {
		months--
		days += daysInMonth(now.Year(), now.Month()-1)
	}
	if months < 0 {
		years--
		months += 12
	}

	if years == 0 && months == 0 && days == 0 {
		return "0 dias"
	}

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d ano%s", years, plural(years)))
	}
	if months > 0 {
		unit := "mês"
		if months > 1 {
			unit = "meses"
		}
		parts = append(parts, fmt.Sprintf("%d %s", months, unit))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d dia%s", days, plural(days)))
	}
	return strings.Join(parts, " e ")
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// daysInMonth retorna o número de dias do mês. O dia zero do mês seguinte
// é o último dia do mês pedido.
func daysInMonth(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
