package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for deriving the cache key from the passphrase.
const (
	sealKeyTime    = 1
	sealKeyMemory  = 64 * 1024 // 64MB
	sealKeyThreads = 4
	sealKeyLen     = 32
	sealMinSaltLen = 8
)

// AESPayloadSealer implements ports.PayloadSealer using AES-256-GCM with a
// key derived by Argon2id.
type AESPayloadSealer struct {
	aead cipher.AEAD
}

// NewAESPayloadSealer derives the sealing key from passphrase and salt.
// The same pair must be configured on every instance sharing a cache.
func NewAESPayloadSealer(passphrase, salt string) (*AESPayloadSealer, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("cache passphrase is empty")
	}
	if len(salt) < sealMinSaltLen {
		return nil, fmt.Errorf("cache salt must be at least %d bytes, got %d", sealMinSaltLen, len(salt))
	}

	key := argon2.IDKey([]byte(passphrase), []byte(salt), sealKeyTime, sealKeyMemory, sealKeyThreads, sealKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return &AESPayloadSealer{aead: aead}, nil
}

// Seal returns nonce || ciphertext.
func (s *AESPayloadSealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *AESPayloadSealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("sealed bundle too short")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("opening sealed bundle: %w", err)
	}
	return plaintext, nil
}
