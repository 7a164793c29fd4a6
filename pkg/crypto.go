package pkg

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// sealedPrefix marks values written by Seal so rows stored before encryption
// was enabled still read back as plain text.
const sealedPrefix = "enc:v1:"

// Crypto seals free text (résumés, job descriptions) at rest with AES-GCM.
type Crypto struct {
	gcm cipher.AEAD
}

func NewCrypto(key string) (*Crypto, error) {
	k := []byte(key)
	switch len(k) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("invalid key size: must be 16, 24 or 32 bytes")
	}
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Crypto{gcm: gcm}, nil
}

func (c *Crypto) Encrypt(input string) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// payload = nonce + ciphertext (ciphertext carries the auth tag)
	final := c.gcm.Seal(nonce, nonce, []byte(input), nil)
	return base64.StdEncoding.EncodeToString(final), nil
}

// Decrypt takes base64 input and returns plaintext
func (c *Crypto) Decrypt(input string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return "", err
	}

	nonceSize := c.gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("invalid encrypted data")
	}

	plainText, err := c.gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(plainText), nil
}

// Seal encrypts s and tags it. A nil Crypto passes s through.
func (c *Crypto) Seal(s string) (string, error) {
	if c == nil || s == "" {
		return s, nil
	}
	enc, err := c.Encrypt(s)
	if err != nil {
		return "", err
	}
	return sealedPrefix + enc, nil
}

// Open reverses Seal. Untagged values are returned unchanged.
func (c *Crypto) Open(s string) (string, error) {
	if !strings.HasPrefix(s, sealedPrefix) {
		return s, nil
	}
	if c == nil {
		return "", fmt.Errorf("value is encrypted but no key is configured")
	}
	return c.Decrypt(strings.TrimPrefix(s, sealedPrefix))
}
