package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(key)
}

func TestSecretCipher_RoundTrip(t *testing.T) {
	c, err := NewSecretCipher(testKey(t))
	require.NoError(t, err)

	enc, err := c.Encrypt("senha-da-prefeitura")
	require.NoError(t, err)
	assert.NotEqual(t, "senha-da-prefeitura", enc)

	plain, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "senha-da-prefeitura", plain)
}

func TestSecretCipher_NonceAleatorio(t *testing.T) {
	c, err := NewSecretCipher(testKey(t))
	require.NoError(t, err)

	a, err := c.Encrypt("mesmo-texto")
	require.NoError(t, err)
	b, err := c.Encrypt("mesmo-texto")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "cada cifragem usa nonce próprio")
}

func TestSecretCipher_ChaveErrada(t *testing.T) {
	c1, err := NewSecretCipher(testKey(t))
	require.NoError(t, err)
	c2, err := NewSecretCipher(testKey(t))
	require.NoError(t, err)

	enc, err := c1.Encrypt("segredo")
	require.NoError(t, err)
	_, err = c2.Decrypt(enc)
	assert.Error(t, err)
}

func TestNewSecretCipher_ChaveInvalida(t *testing.T) {
	_, err := NewSecretCipher("")
	assert.Error(t, err)

	_, err = NewSecretCipher(base64.StdEncoding.EncodeToString([]byte("curta")))
	assert.Error(t, err)

	_, err = NewSecretCipher("não-é-base64!!!")
	assert.Error(t, err)
}
