package crypto

// CPFHash devolve o SHA-256 hex do CPF já normalizado (só dígitos).
// É a coluna consultada nas checagens de duplicidade.
func CPFHash(cpfNormalized string) string {
	return SHA256Hex([]byte(cpfNormalized))
}

// SealCPF cifra o CPF normalizado com a chave corrente e devolve também o
// hash de busca.
func SealCPF(k *Keyring, cpfNormalized string) (ciphertext, nonce []byte, version, hash string, err error) {
	ciphertext, nonce, version, err = k.Encrypt([]byte(cpfNormalized))
	if err != nil {
		return nil, nil, "", "", err
	}
	return ciphertext, nonce, version, CPFHash(cpfNormalized), nil
}

// OpenCPF decifra um CPF armazenado. Campos vazios (registro sem CPF)
// devolvem "".
func OpenCPF(k *Keyring, ciphertext, nonce []byte, version string) (string, error) {
	if len(ciphertext) == 0 || len(nonce) == 0 || version == "" {
		return "", nil
	}
	plain, err := k.Decrypt(ciphertext, nonce, version)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
