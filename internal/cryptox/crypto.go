// Package cryptox holds the client-side symmetric helpers: per-conversation
// key derivation and AES-GCM sealing of record payloads before they are
// handed to the evaluator.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the length of every derived key.
	KeySize = 32

	nonceSize = 12
)

var ErrCiphertextTooShort = errors.New("sealed payload too short")

// ConversationKeys are the two secrets a conversation member derives from
// the shared passphrase. PayloadKey seals record bodies; TrapdoorSecret keys
// search tokens.
type ConversationKeys struct {
	PayloadKey     []byte
	TrapdoorSecret []byte
}

// DeriveMasterKey stretches a passphrase with argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// conversationSalt gives every conversation its own argon2 salt, so equal
// passphrases in different conversations still yield unrelated keys.
func conversationSalt(conversationID string) []byte {
	sum := sha256.Sum256([]byte("blindcalc/conversation/" + conversationID))
	return sum[:]
}

// DeriveConversationKeys turns the passphrase shared by a conversation's
// members into independent payload and trapdoor keys (argon2id, then
// HKDF-SHA256 with distinct info labels).
func DeriveConversationKeys(passphrase []byte, conversationID string) (*ConversationKeys, error) {
	master := DeriveMasterKey(passphrase, conversationSalt(conversationID))
	defer wipe(master)

	payload, err := expand(master, "payload")
	if err != nil {
		return nil, err
	}
	trapdoor, err := expand(master, "trapdoor")
	if err != nil {
		return nil, err
	}
	return &ConversationKeys{PayloadKey: payload, TrapdoorSecret: trapdoor}, nil
}

// Wipe zeroes both keys.
func (k *ConversationKeys) Wipe() {
	wipe(k.PayloadKey)
	wipe(k.TrapdoorSecret)
}

func expand(master []byte, info string) ([]byte, error) {
	out := make([]byte, KeySize)
	r := hkdf.New(sha256.New, master, nil, []byte("blindcalc/"+info))
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("hkdf expand %s: %w", info, err)
	}
	return out, nil
}

// SealPayload encrypts plaintext with AES-GCM under key. The random 12-byte
// nonce is prepended to the returned ciphertext.
func SealPayload(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenPayload reverses SealPayload.
func OpenPayload(sealed, key []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, ErrCiphertextTooShort
	}
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
