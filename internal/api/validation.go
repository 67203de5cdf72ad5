package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ArturRossiJunior/Neurix/internal/validate"
)

// fieldErrors acumula mensagens de validação por campo. A resposta lista
// todos os campos inválidos de uma vez em vez de parar no primeiro.
type fieldErrors map[string]string

func (fe fieldErrors) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": fe})
}

// validatePersonFields aplica as regras de cadastro comuns a paciente e
// responsável. Campos vazios opcionais não entram no mapa; o CPF volta
// normalizado (11 dígitos) quando válido.
type personInput struct {
	FullName      string
	CPF           string
	Phone         string
	Email         string
	BirthDate     string
	cpfRequired   bool
	birthRequired bool
}

func validatePerson(in personInput, now time.Time) (fullName, cpf, phone string, fe fieldErrors) {
	fe = fieldErrors{}
	fullName, err := validate.FullName(in.FullName)
	if err != nil {
		fe["full_name"] = "Insira o nome completo"
	}
	cpfRaw := strings.TrimSpace(in.CPF)
	if cpfRaw == "" {
		if in.cpfRequired {
			fe["cpf"] = "CPF obrigatório"
		}
	} else if cpf, err = validate.CPF(cpfRaw); err != nil {
		fe["cpf"] = "CPF inválido"
	}
	if s := strings.TrimSpace(in.Phone); s != "" {
		if phone, err = validate.Phone(s); err != nil {
			fe["phone"] = "Telefone inválido"
		}
	}
	if s := strings.TrimSpace(in.Email); s != "" {
		if err := validate.Email(s); err != nil {
			fe["email"] = "E-mail inválido"
		}
	}
	if s := strings.TrimSpace(in.BirthDate); s != "" {
		if _, err := validate.Date(s, now); err != nil {
			fe["birth_date"] = "Data de nascimento inválida"
		}
	} else if in.birthRequired {
		fe["birth_date"] = "Data de nascimento obrigatória"
	}
	return fullName, cpf, phone, fe
}

// birthDateToISO converte DD/MM/YYYY (formato de entrada) para YYYY-MM-DD
// (formato de armazenamento). Assume que a data já passou por validate.Date.
func birthDateToISO(br string) string {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(br))
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
