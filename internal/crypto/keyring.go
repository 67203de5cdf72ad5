// Package crypto guarda o CPF cifrado em repouso (AES-256-GCM com chaves
// versionadas) e expõe o hash SHA-256 usado para busca de duplicidade.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Keyring mapeia versão → chave AES-256. A versão corrente cifra; todas as
// versões podem decifrar (rotação sem recriptografar tudo de uma vez).
type Keyring struct {
	keys    map[string][]byte
	current string
}

// LoadKeyring interpreta o formato de ambiente "v1:<base64>,v2:<base64>".
// Aceita base64 com ou sem padding; cada chave precisa ter 32 bytes.
func LoadKeyring(env, currentVersion string) (*Keyring, error) {
	keys := make(map[string][]byte)
	for _, part := range strings.Split(env, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, ":")
		if idx <= 0 {
			continue
		}
		ver := strings.TrimSpace(part[:idx])
		key, err := decodeKey(strings.TrimSpace(part[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("chave %s: %w", ver, err)
		}
		keys[ver] = key
	}
	if _, ok := keys[currentVersion]; !ok {
		return nil, fmt.Errorf("versão corrente %q ausente do keyring", currentVersion)
	}
	return &Keyring{keys: keys, current: currentVersion}, nil
}

func decodeKey(b64 string) ([]byte, error) {
	// 44 chars terminando em "=" decodifica para 33 bytes; normaliza.
	if len(b64) == 44 && strings.HasSuffix(b64, "=") {
		b64 = b64[:43]
	}
	var key []byte
	var err error
	if len(b64)%4 == 0 {
		key, err = base64.StdEncoding.DecodeString(b64)
	} else {
		key, err = base64.RawStdEncoding.DecodeString(b64)
	}
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("chave AES-256 precisa de 32 bytes (veio %d)", len(key))
	}
	return key, nil
}

// CurrentVersion devolve a versão usada para cifrar dados novos.
func (k *Keyring) CurrentVersion() string { return k.current }

// Encrypt cifra com a chave corrente e devolve ciphertext, nonce e versão.
func (k *Keyring) Encrypt(plaintext []byte) (ciphertext, nonce []byte, version string, err error) {
	gcm, err := k.gcm(k.current)
	if err != nil {
		return nil, nil, "", err
	}
	nonce = make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, "", err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nonce, k.current, nil
}

// Decrypt decifra com a chave da versão indicada.
func (k *Keyring) Decrypt(ciphertext, nonce []byte, version string) ([]byte, error) {
	gcm, err := k.gcm(version)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (k *Keyring) gcm(version string) (cipher.AEAD, error) {
	key, ok := k.keys[version]
	if !ok {
		return nil, errors.New("versão de chave desconhecida")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SHA256Hex devolve o SHA-256 em hexadecimal.
func SHA256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
