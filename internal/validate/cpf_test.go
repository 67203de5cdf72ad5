package validate

import "testing"

func TestCPF(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"52998224725", "52998224725", true},
		{"529.982.247-25", "52998224725", true},
		{"52998224724", "", false}, // último dígito alterado
		{"11111111111", "", false}, // todos iguais
		{"00000000000", "", false},
		{"1234567890", "", false}, // 10 dígitos
		{"123456789012", "", false},
		{"", "", false},
		{"abc", "", false},
	}
	for _, c := range cases {
		got, err := CPF(c.in)
		if (err == nil) != c.wantOk {
			t.Fatalf("CPF(%q) err=%v wantOk=%v", c.in, err, c.wantOk)
		}
		if got != c.want {
			t.Fatalf("CPF(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCPFAllIdenticalDigits(t *testing.T) {
	for d := byte('0'); d <= '9'; d++ {
		cpf := string(make([]byte, 0, 11))
		for i := 0; i < 11; i++ {
			cpf += string(d)
		}
		if _, err := CPF(cpf); err == nil {
			t.Fatalf("CPF(%s) deveria ser inválido", cpf)
		}
	}
}

func TestCPFNormalizationIdempotent(t *testing.T) {
	once, err := CPF("529.982.247-25")
	if err != nil {
		t.Fatal(err)
	}
	twice, err := CPF(once)
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Fatalf("normalização não idempotente: %q != %q", once, twice)
	}
}

func TestFormatCPF(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"52998224725", "529.982.247-25"},
		{"529.982.247-25", "529.982.247-25"},
		{"", "N/A"},
		{"123", "123"},
	}
	for _, c := range cases {
		if got := FormatCPF(c.in); got != c.want {
			t.Fatalf("FormatCPF(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
