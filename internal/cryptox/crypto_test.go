package cryptox

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveMasterKey(password, salt)
	key2 := DeriveMasterKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	// snapshot of argon2id(t=1, m=64MiB, p=4)
	expectedHex := "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveConversationKeys(t *testing.T) {
	pass := []byte("team passphrase")

	a, err := DeriveConversationKeys(pass, "room-1")
	require.NoError(t, err)
	b, err := DeriveConversationKeys(pass, "room-1")
	require.NoError(t, err)
	c, err := DeriveConversationKeys(pass, "room-2")
	require.NoError(t, err)

	assert.Len(t, a.PayloadKey, KeySize)
	assert.Len(t, a.TrapdoorSecret, KeySize)
	assert.Equal(t, a.PayloadKey, b.PayloadKey)
	assert.Equal(t, a.TrapdoorSecret, b.TrapdoorSecret)
	assert.NotEqual(t, a.PayloadKey, a.TrapdoorSecret)
	assert.NotEqual(t, a.TrapdoorSecret, c.TrapdoorSecret)

	a.Wipe()
	assert.Equal(t, make([]byte, KeySize), a.PayloadKey)
}

func TestSealOpen(t *testing.T) {
	key := bytes.Repeat([]byte{7}, KeySize)

	sealed, err := SealPayload([]byte("meet at noon"), key)
	require.NoError(t, err)

	again, err := SealPayload([]byte("meet at noon"), key)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "fresh nonce per seal")

	plain, err := OpenPayload(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "meet at noon", string(plain))
}

func TestOpen_Failures(t *testing.T) {
	key := bytes.Repeat([]byte{7}, KeySize)
	other := bytes.Repeat([]byte{8}, KeySize)

	_, err := OpenPayload([]byte("short"), key)
	require.True(t, errors.Is(err, ErrCiphertextTooShort))

	sealed, err := SealPayload([]byte("x"), key)
	require.NoError(t, err)
	_, err = OpenPayload(sealed, other)
	require.Error(t, err)

	_, err = SealPayload([]byte("x"), []byte("bad key"))
	require.Error(t, err)
}
