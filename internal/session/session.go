// Package session keeps the authenticated principal and its bearer token.
//
// The pair is written and removed together: a Store never exposes a
// principal without a token or a token without a principal.
package session

import (
	"bytes"
	"encoding/json"
	"errors"

	"logichain-web/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

var ErrEmptyToken = errors.New("session: empty token")

// Session is the zero value when nobody is logged in.
type Session struct {
	Token     string
	Principal models.Principal
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

type Store interface {
	Save(p models.Principal, token string) error
	Load() Session
	Clear() error
}

// Flasher queues one-shot notices for the next rendered page.
type Flasher interface {
	AddFlash(kind, message string) error
	Flashes() []Notice
}

// Provider returns the store bound to the current request.
type Provider func(c *gin.Context) Store

// decode rebuilds a session from the two persisted values. Anything
// missing or malformed yields the unauthenticated session.
func decode(token, rawUser string) Session {
	if token == "" || rawUser == "" {
		return Session{}
	}
	raw := bytes.TrimSpace([]byte(rawUser))
	if len(raw) == 0 || raw[0] != '{' {
		return Session{}
	}
	var p models.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return Session{}
	}
	return Session{Token: token, Principal: p}
}

func encode(p models.Principal) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
