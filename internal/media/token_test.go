package media

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenGrants(t *testing.T) {
	issuer := NewTokenIssuer("key1", "secret1", "wss://media.example")

	tok, url, err := issuer.AccessToken("room-1", "u1", true)
	require.NoError(t, err)
	assert.Equal(t, "wss://media.example", url)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret1"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "key1", claims["iss"])
	assert.Equal(t, "u1", claims["sub"])

	grant, ok := claims["video"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, grant["roomJoin"])
	assert.Equal(t, "room-1", grant["room"])
	assert.Equal(t, true, grant["canPublish"])
	assert.Equal(t, true, grant["canSubscribe"])
}

func TestAccessTokenStudentCannotPublish(t *testing.T) {
	issuer := NewTokenIssuer("key1", "secret1", "wss://media.example")

	tok, _, err := issuer.AccessToken("room-1", "s1", false)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret1"), nil
	})
	require.NoError(t, err)

	grant := claims["video"].(map[string]interface{})
	assert.Equal(t, false, grant["canPublish"])
}

func TestAccessTokenRequiresRoomAndIdentity(t *testing.T) {
	issuer := NewTokenIssuer("key1", "secret1", "wss://media.example")

	_, _, err := issuer.AccessToken("", "u1", false)
	assert.Error(t, err)
	_, _, err = issuer.AccessToken("room-1", "", false)
	assert.Error(t, err)
}
