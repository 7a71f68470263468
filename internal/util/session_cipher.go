package util

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MinSessionSecretLen is the shortest SESSION_SECRET accepted.
const MinSessionSecretLen = 32

const sessionKeyLen = 32 // AES-256

var (
	// ErrSessionSecret means SESSION_SECRET is missing or too short.
	ErrSessionSecret = errors.New("SESSION_SECRET is not set or is too short (must be at least 32 characters)")
	// ErrInvalidToken covers every way an encrypted session token can fail to open.
	ErrInvalidToken = errors.New("invalid session token")
)

// SessionCipher encrypts session tokens for cookie storage.
// The wire format is hex(iv) + ":" + hex(AES-CBC ciphertext).
type SessionCipher struct {
	block cipher.Block
}

// NewSessionCipher derives the key from the first 32 bytes of secret.
func NewSessionCipher(secret string) (*SessionCipher, error) {
	if len(secret) < MinSessionSecretLen {
		return nil, ErrSessionSecret
	}
	block, err := aes.NewCipher([]byte(secret[:sessionKeyLen]))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	return &SessionCipher{block: block}, nil
}

// Encrypt seals token under a fresh random IV.
func (c *SessionCipher) Encrypt(token string) (string, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("iv: %w", err)
	}

	plain := pkcs7Pad([]byte(token), aes.BlockSize)
	out := make([]byte, len(plain))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out, plain)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(out), nil
}

// Decrypt opens a value produced by Encrypt. Any malformed, truncated or
// tampered input yields ErrInvalidToken.
func (c *SessionCipher) Decrypt(encrypted string) (string, error) {
	ivHex, dataHex, ok := strings.Cut(encrypted, ":")
	if !ok || ivHex == "" || dataHex == "" {
		return "", ErrInvalidToken
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrInvalidToken
	}
	data, err := hex.DecodeString(dataHex)
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", ErrInvalidToken
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plain, data)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", ErrInvalidToken
	}
	return string(plain), nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, fmt.Errorf("bad block length")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, fmt.Errorf("bad padding")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("bad padding")
		}
	}
	return b[:len(b)-n], nil
}
