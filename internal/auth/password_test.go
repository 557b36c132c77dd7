package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	require.True(t, CheckPassword(hash, "correct horse battery"))
	require.False(t, CheckPassword(hash, "wrong password"))
	require.False(t, CheckPassword("not-a-hash", "correct horse battery"))
}
