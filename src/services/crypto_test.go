package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHexKey() string {
	// 32 bytes = 64 hex chars
	return "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
}

func TestNewNotesCipher(t *testing.T) {
	nc, err := NewNotesCipher("")
	require.NoError(t, err)
	assert.Nil(t, nc)

	nc, err = NewNotesCipher(validHexKey())
	require.NoError(t, err)
	assert.NotNil(t, nc)

	_, err = NewNotesCipher("not-hex")
	assert.Error(t, err)

	_, err = NewNotesCipher("0123456789abcdef")
	assert.Error(t, err)
}

func TestNotesCipher_RoundTrip(t *testing.T) {
	nc, err := NewNotesCipher(validHexKey())
	require.NoError(t, err)

	sealed, err := nc.Seal("family history of angina")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, sealedPrefix))
	assert.NotContains(t, sealed, "angina")

	opened, err := nc.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "family history of angina", opened)
}

func TestNotesCipher_UniqueNonces(t *testing.T) {
	nc, err := NewNotesCipher(validHexKey())
	require.NoError(t, err)

	a, err := nc.Seal("same")
	require.NoError(t, err)
	b, err := nc.Seal("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNotesCipher_EmptyAndPlainValues(t *testing.T) {
	nc, err := NewNotesCipher(validHexKey())
	require.NoError(t, err)

	sealed, err := nc.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	opened, err := nc.Open("written before encryption")
	require.NoError(t, err)
	assert.Equal(t, "written before encryption", opened)
}

func TestNilNotesCipher(t *testing.T) {
	var nc *NotesCipher

	sealed, err := nc.Seal("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", sealed)

	_, err = nc.Open(sealedPrefix + "AAAA")
	assert.ErrorIs(t, err, ErrSealedNotes)
}

func TestNotesCipher_WrongKey(t *testing.T) {
	nc, err := NewNotesCipher(validHexKey())
	require.NoError(t, err)
	other, err := NewNotesCipher(strings.Repeat("ab", 32))
	require.NoError(t, err)

	sealed, err := nc.Seal("secret")
	require.NoError(t, err)

	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrSealedNotes)
}
