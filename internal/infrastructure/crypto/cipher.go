// Package crypto implementa o Cipher usado para guardar credenciais de
// integração municipal. ChaCha20-Poly1305 com nonce aleatório por mensagem;
// saída em base64 (nonce || ciphertext).
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/tributa/fiscal-engine/internal/application/fiscal"
)

var _ fiscal.Cipher = (*SecretCipher)(nil)

// SecretCipher cifra segredos com uma chave simétrica fixa da aplicação.
type SecretCipher struct {
	aead cipher.AEAD
}

// NewSecretCipher constrói o cipher a partir da chave em base64 (32 bytes
// decodificados, CIPHER_KEY).
func NewSecretCipher(keyBase64 string) (*SecretCipher, error) {
	if keyBase64 == "" {
		return nil, fmt.Errorf("cipher: chave vazia")
	}
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, fmt.Errorf("cipher: decodificar chave: %w", err)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: criar AEAD: %w", err)
	}
	return &SecretCipher{aead: aead}, nil
}

// Encrypt cifra o texto e devolve base64(nonce || ciphertext).
func (c *SecretCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("cipher: gerar nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decifra base64(nonce || ciphertext).
func (c *SecretCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("cipher: decodificar: %w", err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", fmt.Errorf("cipher: ciphertext curto")
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("cipher: abrir: %w", err)
	}
	return string(plain), nil
}
