// Package keystore encrypts and decrypts custody signing keys at rest.
// Ciphertext format: saltHex:ivHex:tagHex:dataHex, AES-256-GCM with a
// scrypt-derived key from the process-wide master secret.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	keyLength  = 32
	ivLength   = 16
	saltLength = 64

	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

// ErrMalformedCiphertext is returned when an encrypted blob does not match the
// expected salt:iv:tag:data format.
var ErrMalformedCiphertext = errors.New("malformed encrypted key material")

// Decryptor recovers a signing key from its encrypted blob.
type Decryptor interface {
	Decrypt(encrypted, masterSecret string) (string, error)
}

// Keystore is the AES-256-GCM implementation of key encryption at rest.
type Keystore struct{}

// New creates a Keystore.
func New() *Keystore {
	return &Keystore{}
}

// Make sure we conform to the interface
var _ Decryptor = (*Keystore)(nil)

// Encrypt seals a signing key under the master secret. Each call draws a fresh
// salt and IV, so encrypting the same key twice yields different blobs.
func (k *Keystore) Encrypt(signingKey, masterSecret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	gcm, err := newGCM(masterSecret, salt)
	if err != nil {
		return "", err
	}

	// Seal appends the GCM tag to the ciphertext; split it back out to keep
	// the stored format explicit.
	sealed := gcm.Seal(nil, iv, []byte(signingKey), nil)
	tagStart := len(sealed) - gcm.Overhead()
	data, tag := sealed[:tagStart], sealed[tagStart:]

	parts := []string{
		hex.EncodeToString(salt),
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(data),
	}
	return strings.Join(parts, ":"), nil
}

// Decrypt recovers a signing key from its encrypted blob. A wrong secret or a
// tampered blob fails authentication.
func (k *Keystore) Decrypt(encrypted, masterSecret string) (string, error) {
	parts := strings.Split(encrypted, ":")
	if len(parts) != 4 {
		return "", ErrMalformedCiphertext
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) != saltLength {
		return "", ErrMalformedCiphertext
	}
	iv, err := hex.DecodeString(parts[1])
	if err != nil || len(iv) != ivLength {
		return "", ErrMalformedCiphertext
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	data, err := hex.DecodeString(parts[3])
	if err != nil {
		return "", ErrMalformedCiphertext
	}

	gcm, err := newGCM(masterSecret, salt)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, iv, append(data, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt signing key: %w", err)
	}

	return string(plaintext), nil
}

func newGCM(masterSecret string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(masterSecret), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return nil, fmt.Errorf("failed to init GCM: %w", err)
	}

	return gcm, nil
}
