package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_CheckToken(t *testing.T) {
	secret := []byte("super-secret-key")

	cookie, err := Authenticate(42, secret)
	require.NoError(t, err)
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	claims, err := CheckToken(cookie.Value, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.CustomerID)

	_, err = CheckToken(cookie.Value, []byte("another-secret"))
	require.Error(t, err)

	_, err = CheckToken("not-a-token", secret)
	require.Error(t, err)
}
