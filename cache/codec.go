package cache

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// Codec serializes entries for stores that keep bytes.
type Codec[V any] interface {
	Encode(entry Entry[V]) ([]byte, error)
	Decode(data []byte) (Entry[V], error)
}

// JSONCodec stores the whole entry, insertion time and TTL included, as JSON.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(entry Entry[V]) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry: %w", err)
	}
	return data, nil
}

func (JSONCodec[V]) Decode(data []byte) (Entry[V], error) {
	var entry Entry[V]
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry[V]{}, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return entry, nil
}

// EncryptedCodec seals the output of another codec with AES-256-GCM and
// base64-encodes the result.
type EncryptedCodec[V any] struct {
	inner Codec[V]
	gcm   cipher.AEAD
}

func NewEncryptedCodec[V any](inner Codec[V], key []byte) (*EncryptedCodec[V], error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &EncryptedCodec[V]{inner: inner, gcm: gcm}, nil
}

func (c *EncryptedCodec[V]) Encode(entry Entry[V]) ([]byte, error) {
	plaintext, err := c.inner.Encode(entry)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.gcm.Seal(nonce, nonce, plaintext, nil)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sealed)))
	base64.StdEncoding.Encode(out, sealed)
	return out, nil
}

func (c *EncryptedCodec[V]) Decode(data []byte) (Entry[V], error) {
	sealed := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(sealed, data)
	if err != nil {
		return Entry[V]{}, fmt.Errorf("failed to decode entry: %w", err)
	}
	sealed = sealed[:n]

	nonceSize := c.gcm.NonceSize()
	if len(sealed) < nonceSize {
		return Entry[V]{}, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Entry[V]{}, fmt.Errorf("failed to decrypt entry: %w", err)
	}
	return c.inner.Decode(plaintext)
}
