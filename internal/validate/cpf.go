package validate

// CPF remove a máscara e valida os 11 dígitos com os dois dígitos
// verificadores (esquema mod-11). Retorna o CPF normalizado (só dígitos).
func CPF(raw string) (string, error) {
	cpf := OnlyDigits(raw)
	if len(cpf) != 11 {
		return "", ErrInvalidCPF
	}
	allEqual := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return "", ErrInvalidCPF
	}
	if checkDigit(cpf, 9) != int(cpf[9]-'0') {
		return "", ErrInvalidCPF
	}
	if checkDigit(cpf, 10) != int(cpf[10]-'0') {
		return "", ErrInvalidCPF
	}
	return cpf, nil
}

// checkDigit calcula o dígito verificador sobre os primeiros n dígitos,
// pesos decrescentes n+1..2; resto 10 ou 11 vira 0.
func checkDigit(cpf string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(cpf[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 || rest == 11 {
		rest = 0
	}
	return rest
}

// FormatCPF formata um CPF para exibição (DDD.DDD.DDD-DD). Entrada que não
// tenha 11 dígitos volta como veio; vazio vira "N/A".
func FormatCPF(raw string) string {
	if raw == "" {
		return "N/A"
	}
	cpf := OnlyDigits(raw)
	if len(cpf) != 11 {
		return raw
	}
	return cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
}
