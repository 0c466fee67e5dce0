// Package media issues LiveKit-compatible access tokens. The media service
// itself is external; all this process does is mint the HS256 grant a client
// presents when joining the video room.
package media

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 6 * time.Hour

type videoGrant struct {
	RoomJoin       bool   `json:"roomJoin"`
	Room           string `json:"room"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
}

// TokenIssuer mints room-scoped access tokens for the media server.
type TokenIssuer struct {
	apiKey    string
	apiSecret string
	serverURL string
}

func NewTokenIssuer(apiKey, apiSecret, serverURL string) *TokenIssuer {
	return &TokenIssuer{apiKey: apiKey, apiSecret: apiSecret, serverURL: serverURL}
}

// AccessToken returns a join token for (room, identity) plus the media
// server URL the client should dial. Teachers publish; students subscribe.
func (t *TokenIssuer) AccessToken(roomID, identity string, canPublish bool) (token, serverURL string, err error) {
	if roomID == "" || identity == "" {
		return "", "", errors.New("room and identity are required")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": t.apiKey,
		"sub": identity,
		"nbf": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
		"video": videoGrant{
			RoomJoin:       true,
			Room:           roomID,
			CanPublish:     canPublish,
			CanSubscribe:   true,
			CanPublishData: true,
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.apiSecret))
	if err != nil {
		return "", "", err
	}
	return tok, t.serverURL, nil
}
