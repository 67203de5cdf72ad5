package api

import (
	"testing"
	"time"
)

func TestValidatePersonAllInvalid(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	_, _, _, fe := validatePerson(personInput{
		FullName:      "Ana",
		CPF:           "111.111.111-11",
		Phone:         "119",
		Email:         "ana@",
		BirthDate:     "31/04/2020",
		cpfRequired:   true,
		birthRequired: true,
	}, now)
	for _, field := range []string{"full_name", "cpf", "phone", "email", "birth_date"} {
		if fe[field] == "" {
			t.Errorf("esperava erro no campo %q, mapa: %v", field, fe)
		}
	}
}

func TestValidatePersonValid(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	fullName, cpf, phone, fe := validatePerson(personInput{
		FullName:      "  ana   DA silva ",
		CPF:           "529.982.247-25",
		Phone:         "(11) 98765-4321",
		Email:         "ana@example.com",
		BirthDate:     "15/05/2015",
		cpfRequired:   true,
		birthRequired: true,
	}, now)
	if len(fe) != 0 {
		t.Fatalf("esperava mapa vazio, veio %v", fe)
	}
	if fullName != "Ana Da Silva" {
		t.Errorf("fullName = %q", fullName)
	}
	if cpf != "52998224725" {
		t.Errorf("cpf = %q", cpf)
	}
	if phone != "11987654321" {
		t.Errorf("phone = %q", phone)
	}
}

func TestValidatePersonOptionalEmpty(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	_, cpf, phone, fe := validatePerson(personInput{
		FullName: "Maria Souza",
	}, now)
	if len(fe) != 0 {
		t.Fatalf("campos opcionais vazios não devem gerar erro: %v", fe)
	}
	if cpf != "" || phone != "" {
		t.Errorf("cpf=%q phone=%q, esperava vazios", cpf, phone)
	}
}

func TestBirthDateToISO(t *testing.T) {
	if got := birthDateToISO("15/05/2015"); got != "2015-05-15" {
		t.Errorf("birthDateToISO = %q", got)
	}
	if got := birthDateToISO("bogus"); got != "" {
		t.Errorf("birthDateToISO(bogus) = %q, esperava vazio", got)
	}
}
