package validate

import "testing"

func TestPhone(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"(47) 99999-0000", "47999990000", true},
		{"47999990000", "47999990000", true},
		{"(47) 3333-0000", "4733330000", true},
		{"999990000", "", false},    // 9 dígitos
		{"479999900001", "", false}, // 12 dígitos
		{"", "", false},
	}
	for _, c := range cases {
		got, err := Phone(c.in)
		if (err == nil) != c.wantOk {
			t.Fatalf("Phone(%q) err=%v wantOk=%v", c.in, err, c.wantOk)
		}
		if got != c.want {
			t.Fatalf("Phone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPhoneNormalizationIdempotent(t *testing.T) {
	once, err := Phone("(47) 99999-0000")
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Phone(once)
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Fatalf("normalização não idempotente: %q != %q", once, twice)
	}
}

func TestMaskPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4", "(4"},
		{"47", "(47"},
		{"479", "(47) 9"},
		{"479999", "(47) 9999"},
		{"4799990", "(47) 9999-0"},
		{"4733330000", "(47) 3333-0000"},
		{"47999990000", "(47) 99999-0000"},
		{"479999900001234", "(47) 99999-0000"}, // excedente descartado
		{"(47) 99999-0000", "(47) 99999-0000"},
	}
	for _, c := range cases {
		if got := MaskPhone(c.in); got != c.want {
			t.Fatalf("MaskPhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"47999990000", "(47) 99999-0000"},
		{"4733330000", "(47) 3333-0000"},
		{"", "N/A"},
		{"123", "123"},
	}
	for _, c := range cases {
		if got := FormatPhone(c.in); got != c.want {
			t.Fatalf("FormatPhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
