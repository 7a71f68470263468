package util

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-test-session-secret-of-40-chars"

func newTestCipher(t *testing.T) *SessionCipher {
	t.Helper()
	c, err := NewSessionCipher(testSecret)
	require.NoError(t, err)
	return c
}

func TestNewSessionCipher_SecretLength(t *testing.T) {
	for _, s := range []string{"", "short", strings.Repeat("a", 31)} {
		_, err := NewSessionCipher(s)
		assert.True(t, errors.Is(err, ErrSessionSecret), "secret of length %d", len(s))
	}

	_, err := NewSessionCipher(strings.Repeat("a", 32))
	assert.NoError(t, err)
}

func TestSessionCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, token := range []string{
		"6f1c2f0e-8d3b-4a55-9d5e-1b2c3d4e5f60",
		"",
		"x",
		strings.Repeat("A", 16), // exactly one block, forces a full padding block
		strings.Repeat("B", 1000),
		"ünïcødé-token",
	} {
		enc, err := c.Encrypt(token)
		require.NoError(t, err)

		got, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, token, got)
	}
}

func TestSessionCipher_Format(t *testing.T) {
	enc, err := newTestCipher(t).Encrypt("6f1c2f0e-8d3b-4a55-9d5e-1b2c3d4e5f60")
	require.NoError(t, err)

	ivHex, dataHex, ok := strings.Cut(enc, ":")
	require.True(t, ok)
	assert.Len(t, ivHex, 32)
	// 36-byte uuid pads to 48 bytes
	assert.Len(t, dataHex, 96)
	_, err = hex.DecodeString(ivHex + dataHex)
	assert.NoError(t, err)
}

func TestSessionCipher_RandomIV(t *testing.T) {
	c := newTestCipher(t)

	a, err := c.Encrypt("same-token")
	require.NoError(t, err)
	b, err := c.Encrypt("same-token")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	for _, enc := range []string{a, b} {
		got, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, "same-token", got)
	}
}

// Interop with a plain AES-256-CBC/PKCS#7 implementation keyed by the first
// 32 bytes of the secret.
func TestSessionCipher_KeyIsSecretPrefix(t *testing.T) {
	block, err := aes.NewCipher([]byte(testSecret[:32]))
	require.NoError(t, err)

	iv := []byte("0123456789abcdef")
	plain := append([]byte("hello"), 11, 11, 11, 11, 11, 11, 11, 11, 11, 11, 11)
	out := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plain)

	got, err := newTestCipher(t).Decrypt(hex.EncodeToString(iv) + ":" + hex.EncodeToString(out))
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	// characters past the 32nd do not change the key
	other, err := NewSessionCipher(testSecret[:32] + "-different-tail")
	require.NoError(t, err)
	enc, err := other.Encrypt("shared")
	require.NoError(t, err)
	got, err = newTestCipher(t).Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "shared", got)
}

func TestSessionCipher_DecryptRejectsMalformedInput(t *testing.T) {
	c := newTestCipher(t)
	valid, err := c.Encrypt("token")
	require.NoError(t, err)
	ivHex, dataHex, _ := strings.Cut(valid, ":")

	cases := map[string]string{
		"no separator":       "not-a-valid-format",
		"empty":              "",
		"only separator":     ":",
		"missing iv":         ":" + dataHex,
		"missing ciphertext": ivHex + ":",
		"bad hex iv":         "zz" + ivHex[2:] + ":" + dataHex,
		"bad hex data":       ivHex + ":" + "zz" + dataHex[2:],
		"short iv":           ivHex[:30] + ":" + dataHex,
		"partial block":      ivHex + ":" + dataHex[:30],
		"odd hex length":     ivHex + ":" + dataHex + "a",
		"extra segment":      valid + ":ff",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var got string
			var err error
			assert.NotPanics(t, func() { got, err = c.Decrypt(in) })
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, got)
		})
	}
}

func TestSessionCipher_WrongKey(t *testing.T) {
	enc, err := newTestCipher(t).Encrypt("6f1c2f0e-8d3b-4a55-9d5e-1b2c3d4e5f60")
	require.NoError(t, err)

	other, err := NewSessionCipher(strings.Repeat("k", 32))
	require.NoError(t, err)
	got, err := other.Decrypt(enc)
	// a wrong key almost always breaks the padding; if the padding happens
	// to survive, the plaintext must still differ
	if err == nil {
		assert.NotEqual(t, "6f1c2f0e-8d3b-4a55-9d5e-1b2c3d4e5f60", got)
	} else {
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestSessionCipher_TamperedIV(t *testing.T) {
	c := newTestCipher(t)
	enc, err := c.Encrypt("abc")
	require.NoError(t, err)

	ivHex, dataHex, _ := strings.Cut(enc, ":")
	iv, _ := hex.DecodeString(ivHex)
	// "abc" carries 13 bytes of padding; flipping the last IV byte turns the
	// final padding byte into 13^0xff, which is out of range
	iv[len(iv)-1] ^= 0xff
	_, err = c.Decrypt(hex.EncodeToString(iv) + ":" + dataHex)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPKCS7(t *testing.T) {
	padded := pkcs7Pad([]byte("abc"), 16)
	assert.Len(t, padded, 16)
	out, err := pkcs7Unpad(padded, 16)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	_, err = pkcs7Unpad(append([]byte("abcdefghijklmno"), 0), 16)
	assert.Error(t, err)
	_, err = pkcs7Unpad(append([]byte("abcdefghijklmn"), 3, 2), 16)
	assert.Error(t, err)
	_, err = pkcs7Unpad(nil, 16)
	assert.Error(t, err)
}

func BenchmarkSessionCipher_Encrypt(b *testing.B) {
	c, _ := NewSessionCipher(testSecret)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Encrypt("6f1c2f0e-8d3b-4a55-9d5e-1b2c3d4e5f60")
	}
}
