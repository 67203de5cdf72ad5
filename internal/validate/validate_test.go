package validate

import (
	"testing"
	"time"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"Ana", "", false},
		{"Ana Silva", "Ana Silva", true},
		{"  ana   DA silva ", "Ana Da Silva", true},
		{"A Silva", "", false},
		{"", "", false},
		{"   ", "", false},
		{"maria JOSÉ souza", "Maria José Souza", true},
	}
	for _, c := range cases {
		got, err := FullName(c.in)
		if (err == nil) != c.wantOk {
			t.Fatalf("FullName(%q) err=%v wantOk=%v", c.in, err, c.wantOk)
		}
		if got != c.want {
			t.Fatalf("FullName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFullNameIdempotent(t *testing.T) {
	once, err := FullName("  ana   DA silva ")
	if err != nil {
		t.Fatal(err)
	}
	twice, err := FullName(once)
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Fatalf("normalização não idempotente: %q != %q", once, twice)
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"a+b@b.com.br", true},
		{"", false},
		{"   ", false},
		{"a@", false},
		{"@b.com", false},
		{"a@b", false},
		// A checagem é estrutural de propósito: espaço interno passa.
		{"a b@c.com", true},
		{"ana maria@dominio.com.br", true},
	}
	for _, c := range cases {
		if err := Email(c.in); (err == nil) != c.want {
			t.Fatalf("Email(%q) err=%v want ok=%v", c.in, err, c.want)
		}
	}
}

func TestDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want bool
	}{
		{"31/04/2020", false}, // abril tem 30 dias
		{"29/02/2020", true},  // bissexto
		{"29/02/2021", false},
		{"15/05/2015", true},
		{"01/01/1899", false},
		{"02/06/2024", false}, // futura
		{"2020-01-01", false},
		{"abc", false},
	}
	for _, c := range cases {
		_, err := Date(c.in, now)
		if (err == nil) != c.want {
			t.Fatalf("Date(%q) err=%v want ok=%v", c.in, err, c.want)
		}
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in     string
		wantOk bool
	}{
		{"Ab1!abcd", true},
		{"curta1!", false}, // menos de 8
		{"SEMMINUSCULA1!", false},
		{"semmaiuscula1!", false},
		{"SemNumero!!", false},
		{"SemSimbolo12", false},
	}
	for _, c := range cases {
		if err := Password(c.in); (err == nil) != c.wantOk {
			t.Fatalf("Password(%q) err=%v wantOk=%v", c.in, err, c.wantOk)
		}
	}
}

func TestPasswordFirstFailureWins(t *testing.T) {
	// Senha curta e sem maiúscula: o motivo deve ser o comprimento.
	err := Password("ab1!")
	if err == nil {
		t.Fatal("esperava erro")
	}
	if err.Error() != "a senha deve ter pelo menos 8 caracteres" {
		t.Fatalf("motivo errado: %v", err)
	}
}

func TestOnlyDigits(t *testing.T) {
	if got := OnlyDigits("(47) 99999-0000"); got != "47999990000" {
		t.Fatalf("OnlyDigits = %q", got)
	}
	if got := OnlyDigits("abc"); got != "" {
		t.Fatalf("OnlyDigits = %q", got)
	}
}
