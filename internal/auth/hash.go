package auth

import "golang.org/x/crypto/bcrypt"

// Custo acima do default da lib; cadastro de profissional é raro o bastante
// para pagar o hash mais caro.
const bcryptCost = 12

// HashPassword gera o hash bcrypt da senha. bcrypt só considera os primeiros
// 72 bytes, então senhas maiores viram erro em vez de truncamento silencioso.
func HashPassword(plain string) (string, error) {
	if len(plain) > 72 {
		return "", bcrypt.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compara o hash com a senha; qualquer erro conta como senha
// errada.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
