package validate

// Phone valida telefone com DDD: exatamente 10 (fixo) ou 11 (celular)
// dígitos depois de remover a máscara. Não valida faixa de DDD.
func Phone(raw string) (string, error) {
	digits := OnlyDigits(raw)
	if len(digits) != 10 && len(digits) != 11 {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// MaskPhone formata incrementalmente o que o usuário digitou em
// (DD) DDDD-DDDD ou (DD) DDDDD-DDDD, limitando a 11 dígitos. Serve para
// máscara de digitação; a validação estrita é Phone.
func MaskPhone(raw string) string {
	v := OnlyDigits(raw)
	if len(v) > 11 {
		v = v[:11]
	}
	switch n := len(v); {
	case n <= 2:
		return "(" + v
	case n <= 6:
		return "(" + v[:2] + ") " + v[2:]
	case n <= 10:
		return "(" + v[:2] + ") " + v[2:6] + "-" + v[6:]
	default:
		return "(" + v[:2] + ") " + v[2:7] + "-" + v[7:]
	}
}

// FormatPhone formata um telefone já armazenado para exibição. Valores fora
// de 10/11 dígitos voltam como vieram; vazio vira "N/A".
func FormatPhone(raw string) string {
	if raw == "" {
		return "N/A"
	}
	digits := OnlyDigits(raw)
	switch len(digits) {
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	}
	return raw
}
