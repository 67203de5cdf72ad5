package validate

import (
	"regexp"
	"strings"
)

// crmRegex aceita o formato canônico: 4 a 8 dígitos, barra, sigla de UF.
var crmRegex = regexp.MustCompile(`^\d{4,8}/[A-Za-z]{2}$`)

// CRM valida o registro profissional no formato NNNN.../UF (ex.: 123456/SP).
func CRM(raw string) error {
	if !crmRegex.MatchString(strings.TrimSpace(raw)) {
		return ErrInvalidCRM
	}
	return nil
}

// FormatCRM devolve a forma canônica de armazenamento: maiúsculas, sem
// espaços nas bordas. Pressupõe entrada já validada por CRM.
func FormatCRM(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// MaskCRM normaliza a digitação para o formato canônico DIGITOS/UF.
// Aceita dígitos e a sigla em qualquer ordem (123456/SP ou SP/123456) e
// descarta separadores; a sigla sempre vai para depois da barra.
func MaskCRM(raw string) string {
	v := strings.ToUpper(raw)
	var digits, letters strings.Builder
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9' && digits.Len() < 8:
			digits.WriteRune(r)
		case r >= 'A' && r <= 'Z' && letters.Len() < 2:
			letters.WriteRune(r)
		}
	}
	if letters.Len() == 0 {
		return digits.String()
	}
	return digits.String() + "/" + letters.String()
}
