// Package validate concentra validação e normalização de campos digitados
// (nome, CPF, telefone, e-mail, data, senha, CRM). Todas as funções são puras:
// sem I/O, sem estado, erro nunca vira panic. Normalização é idempotente.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	ErrInvalidFullName = errors.New("nome completo inválido")
	ErrInvalidCPF      = errors.New("cpf inválido")
	ErrInvalidPhone    = errors.New("telefone inválido")
	ErrInvalidEmail    = errors.New("e-mail inválido")
	ErrInvalidDate     = errors.New("data inválida")
	ErrInvalidCRM      = errors.New("crm inválido")
)

// emailRegex valida formato de e-mail (uma @ e domínio com ponto).
// Propositalmente permissivo: o resto do sistema assume este contrato,
// então não apertar a classe de caracteres.
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// FullName exige pelo menos duas partes com 2+ caracteres cada e devolve o
// nome com cada parte capitalizada, partes unidas por espaço simples.
func FullName(raw string) (string, error) {
	parts := strings.Fields(raw)
	if len(parts) < 2 {
		return "", ErrInvalidFullName
	}
	for i, p := range parts {
		runes := []rune(p)
		if len(runes) < 2 {
			return "", ErrInvalidFullName
		}
		parts[i] = string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(parts, " "), nil
}

// Email valida o formato do e-mail. Não implementa RFC 5322 completa.
func Email(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || !emailRegex.MatchString(raw) {
		return ErrInvalidEmail
	}
	return nil
}

// Date valida uma data no formato DD/MM/AAAA e retorna a data interpretada.
// Rejeita datas que não fecham no calendário (31/04), datas futuras em
// relação a now e anos anteriores a 1900.
func Date(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse("02/01/2006", raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	// time.Parse aceita "31/04" normalizando para 01/05; o parse estrito
	// exige que a data reconstruída seja idêntica à digitada.
	if t.Format("02/01/2006") != raw {
		return time.Time{}, ErrInvalidDate
	}
	if t.After(now) {
		return time.Time{}, ErrInvalidDate
	}
	if t.Year() < 1900 {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// Password aplica as regras em ordem e retorna o primeiro motivo de falha.
// Retorna nil quando a senha passa em todas.
func Password(raw string) error {
	if len(raw) < 8 {
		return errors.New("a senha deve ter pelo menos 8 caracteres")
	}
	var lower, upper, digit, symbol bool
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	switch {
	case !lower:
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	case !upper:
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	case !digit:
		return errors.New("a senha deve conter pelo menos um número")
	case !symbol:
		return errors.New("a senha deve conter pelo menos um caractere especial")
	}
	return nil
}

// OnlyDigits remove tudo que não for dígito decimal.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
