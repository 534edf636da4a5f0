package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// EnvelopeVersion is the envelope format version.
	EnvelopeVersion = 1

	// DefaultIterations is the PBKDF2 iteration count for new material.
	DefaultIterations = 200_000

	saltSize  = 16
	nonceSize = 12
	tagSize   = 16
	keySize   = 32
)

// Envelope is the stored form of an encrypted payload. All binary fields
// are base64 (std) encoded; Tag is kept separate from Data so a truncated
// file fails authentication instead of being misparsed.
type Envelope struct {
	V    int    `json:"v"`
	Salt string `json:"salt"`
	IV   string `json:"iv"`
	Tag  string `json:"tag"`
	Data string `json:"data"`
}

// DeriveKey derives a 256-bit AES key from a password and salt.
func DeriveKey(password string, salt []byte, iterations int) []byte {
	if iterations < 1 {
		iterations = 1
	}
	return pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
}

// DeriveVerifier derives raw key bits for password verification and
// returns them base64-encoded. The verifier shares the KDF with the data
// envelope but its salt and storage are independent.
func DeriveVerifier(password string, salt []byte, iterations int) string {
	return base64.StdEncoding.EncodeToString(DeriveKey(password, salt, iterations))
}

// NewSalt returns a fresh random 16-byte salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Encrypt seals plaintext under a key derived from the password with a
// fresh salt and nonce.
func Encrypt(plaintext []byte, password string) (*Envelope, error) {
	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}
	key := DeriveKey(password, salt, DefaultIterations)
	return EncryptWithKey(plaintext, salt, key)
}

// EncryptWithKey seals plaintext with an already-derived key. The salt is
// recorded in the envelope so decryption can re-derive the same key; this
// lets the session reuse a cached salt+key across saves instead of paying
// the KDF cost on every mutation.
func EncryptWithKey(plaintext, salt, key []byte) (*Envelope, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid key length: expected %d bytes, got %d bytes", keySize, len(key))
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	if len(sealed) < tagSize {
		return nil, fmt.Errorf("encryption output too short")
	}
	split := len(sealed) - tagSize

	return &Envelope{
		V:    EnvelopeVersion,
		Salt: base64.StdEncoding.EncodeToString(salt),
		IV:   base64.StdEncoding.EncodeToString(nonce),
		Tag:  base64.StdEncoding.EncodeToString(sealed[split:]),
		Data: base64.StdEncoding.EncodeToString(sealed[:split]),
	}, nil
}

// Decrypt opens an envelope with the supplied password. Any failure
// (malformed fields, wrong password, tampered ciphertext) returns nil;
// the caller treats nil as "cannot open".
func Decrypt(env *Envelope, password string) []byte {
	if env == nil {
		return nil
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil || len(salt) == 0 {
		return nil
	}
	key := DeriveKey(password, salt, DefaultIterations)
	return DecryptWithKey(env, key)
}

// DecryptWithKey opens an envelope with an already-derived key, returning
// nil on any failure.
func DecryptWithKey(env *Envelope, key []byte) []byte {
	if env == nil || len(key) != keySize {
		return nil
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return nil
	}
	tag, err := base64.StdEncoding.DecodeString(env.Tag)
	if err != nil {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return nil
	}
	if len(nonce) != nonceSize || len(tag) == 0 || len(data) == 0 {
		return nil
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil
	}

	sealed := make([]byte, 0, len(data)+len(tag))
	sealed = append(sealed, data...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil
	}
	return plaintext
}

// EnvelopeSalt decodes the envelope's salt, or returns nil if malformed.
func EnvelopeSalt(env *Envelope) []byte {
	if env == nil {
		return nil
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil || len(salt) == 0 {
		return nil
	}
	return salt
}
