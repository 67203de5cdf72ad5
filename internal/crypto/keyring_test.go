package crypto

import (
	"strings"
	"testing"
)

func testKeyring(t *testing.T) *Keyring {
	t.Helper()
	env := "v1:" + strings.Repeat("A", 43) + ", v2:" + strings.Repeat("B", 43)
	k, err := LoadKeyring(env, "v2")
	if err != nil {
		t.Fatalf("LoadKeyring: %v", err)
	}
	return k
}

func TestLoadKeyring(t *testing.T) {
	k := testKeyring(t)
	if k.CurrentVersion() != "v2" {
		t.Fatalf("current = %q", k.CurrentVersion())
	}
	// Formato antigo com 44 chars e "=" no fim também decodifica.
	if _, err := LoadKeyring("v1:"+strings.Repeat("A", 43)+"=", "v1"); err != nil {
		t.Fatalf("LoadKeyring 44 chars: %v", err)
	}
	if _, err := LoadKeyring("v1:"+strings.Repeat("A", 43), "v9"); err == nil {
		t.Fatal("versão corrente ausente deveria falhar")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	k := testKeyring(t)
	cipher, nonce, ver, err := k.Encrypt([]byte("dado sensível"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ver != "v2" || len(cipher) == 0 || len(nonce) == 0 {
		t.Fatalf("ver=%q cipher=%d nonce=%d", ver, len(cipher), len(nonce))
	}
	plain, err := k.Decrypt(cipher, nonce, ver)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(plain) != "dado sensível" {
		t.Fatalf("plain = %q", plain)
	}
	if _, err := k.Decrypt(cipher, nonce, "v1"); err == nil {
		t.Fatal("versão errada deveria falhar na autenticação GCM")
	}
}

func TestSealOpenCPF(t *testing.T) {
	k := testKeyring(t)
	cipher, nonce, ver, hash, err := SealCPF(k, "52998224725")
	if err != nil {
		t.Fatalf("SealCPF: %v", err)
	}
	if hash != CPFHash("52998224725") {
		t.Fatal("hash inconsistente")
	}
	got, err := OpenCPF(k, cipher, nonce, ver)
	if err != nil {
		t.Fatalf("OpenCPF: %v", err)
	}
	if got != "52998224725" {
		t.Fatalf("cpf = %q", got)
	}
	// Registro sem CPF.
	if got, err := OpenCPF(k, nil, nil, ""); err != nil || got != "" {
		t.Fatalf("OpenCPF vazio: %q %v", got, err)
	}
}
