package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("hunter2hunter2", hash))
	require.ErrorIs(t, VerifyPassword("hunter3hunter3", hash), ErrPasswordMismatch)
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=4$salt", // missing hash part
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=y,p=z$c2FsdA$aGFzaA",
	} {
		err := VerifyPassword("whatever", h)
		require.Error(t, err, "hash %q", h)
		require.NotErrorIs(t, err, ErrPasswordMismatch)
	}
}

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	p, err := GeneratePassword()
	require.NoError(t, err)
	require.Len(t, p, 16)

	q, err := GeneratePassword()
	require.NoError(t, err)
	require.NotEqual(t, p, q)
}
