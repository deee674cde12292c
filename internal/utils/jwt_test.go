package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
}

func TestParseInvalidToken(t *testing.T) {
	_, err := ParseToken("not-a-token")
	require.Error(t, err)
}
