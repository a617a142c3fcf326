package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// sealedPrefix marks a notes value written by NotesCipher.Seal
const sealedPrefix = "enc:v1:"

// ErrSealedNotes is returned when sealed notes cannot be opened
var ErrSealedNotes = errors.New("patient notes are encrypted and cannot be opened")

// NotesCipher seals free-text patient notes at rest with AES-256-GCM.
// A nil *NotesCipher stores notes in plain text.
type NotesCipher struct {
	gcm cipher.AEAD
}

// NewNotesCipher creates a cipher from a hex-encoded 32-byte key.
// Returns nil if hexKey is empty (encryption disabled).
func NewNotesCipher(hexKey string) (*NotesCipher, error) {
	if hexKey == "" {
		return nil, nil
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid encryption key: must be 32 bytes (64 hex chars), got %d bytes", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &NotesCipher{gcm: gcm}, nil
}

// Seal returns the stored form of notes: the prefix followed by
// base64(nonce || ciphertext). Empty notes stay empty.
func (nc *NotesCipher) Seal(notes string) (string, error) {
	if nc == nil || notes == "" {
		return notes, nil
	}

	nonce := make([]byte, nc.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := nc.gcm.Seal(nonce, nonce, []byte(notes), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Values without the prefix were written before
// encryption was enabled and are returned unchanged.
func (nc *NotesCipher) Open(stored string) (string, error) {
	if !strings.HasPrefix(stored, sealedPrefix) {
		return stored, nil
	}
	if nc == nil {
		return "", ErrSealedNotes
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealedNotes, err)
	}

	nonceSize := nc.gcm.NonceSize()
	if len(raw) < nonceSize+nc.gcm.Overhead() {
		return "", fmt.Errorf("%w: value too short", ErrSealedNotes)
	}

	plain, err := nc.gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealedNotes, err)
	}
	return string(plain), nil
}
