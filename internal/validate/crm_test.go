package validate

import "testing"

func TestCRM(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"123456/SP", true},
		{"1234/sc", true}, // valida sem exigir maiúscula; FormatCRM canoniza
		{" 123456/SP ", true},
		{"123/SP", false}, // menos de 4 dígitos
		{"123456789/SP", false},
		{"123456/S", false},
		{"123456/SPP", false},
		{"SP/123456", false}, // validação só aceita a forma canônica
		{"123456", false},
		{"", false},
	}
	for _, c := range cases {
		if err := CRM(c.in); (err == nil) != c.want {
			t.Fatalf("CRM(%q) err=%v want ok=%v", c.in, err, c.want)
		}
	}
}

func TestFormatCRM(t *testing.T) {
	if got := FormatCRM(" 123456/sp "); got != "123456/SP" {
		t.Fatalf("FormatCRM = %q", got)
	}
	// Idempotente sobre a forma canônica.
	if got := FormatCRM("123456/SP"); got != "123456/SP" {
		t.Fatalf("FormatCRM = %q", got)
	}
}

func TestMaskCRM(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123456sp", "123456/SP"},
		{"123456/SP", "123456/SP"},
		{"sp123456", "123456/SP"}, // sigla antes dos dígitos é reordenada
		{"12345", "12345"},
		{"123456789", "12345678"}, // dígitos limitados a 8
		{"12-34.56 sp", "123456/SP"},
		{"", ""},
	}
	for _, c := range cases {
		if got := MaskCRM(c.in); got != c.want {
			t.Fatalf("MaskCRM(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMaskCRMIdempotent(t *testing.T) {
	once := MaskCRM("sp123456")
	if twice := MaskCRM(once); once != twice {
		t.Fatalf("máscara não idempotente: %q != %q", once, twice)
	}
}
