package session

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"logichain-web/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/hkdf"
)

const minSecretLen = 16

type CookieOptions struct {
	MaxAge int
	Secure bool
}

// NewCookieBackend builds the signed and encrypted cookie store. The HMAC
// and AES keys are both derived from secret.
func NewCookieBackend(secret []byte, opts CookieOptions) (cookie.Store, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretLen)
	}

	kdf := hkdf.New(sha256.New, secret, nil, []byte("logichain-web session"))
	hashKey := make([]byte, 32)
	blockKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, hashKey); err != nil {
		return nil, fmt.Errorf("derive session hash key: %w", err)
	}
	if _, err := io.ReadFull(kdf, blockKey); err != nil {
		return nil, fmt.Errorf("derive session block key: %w", err)
	}

	store := cookie.NewStore(hashKey, blockKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// CookieStore adapts a gin-contrib session to Store. Save and Clear commit
// both keys with a single Set-Cookie.
type CookieStore struct {
	sess sessions.Session
}

func NewCookieStore(sess sessions.Session) *CookieStore {
	return &CookieStore{sess: sess}
}

// FromGin is the Provider used in production. It requires the
// sessions.Sessions middleware to run first.
func FromGin(c *gin.Context) Store {
	return NewCookieStore(sessions.Default(c))
}

func (s *CookieStore) Save(p models.Principal, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	raw, err := encode(p)
	if err != nil {
		return fmt.Errorf("encode principal: %w", err)
	}
	s.sess.Set(tokenKey, token)
	s.sess.Set(userKey, raw)
	if err := s.sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *CookieStore) Load() Session {
	token, _ := s.sess.Get(tokenKey).(string)
	raw, _ := s.sess.Get(userKey).(string)
	return decode(token, raw)
}

func (s *CookieStore) Clear() error {
	s.sess.Delete(tokenKey)
	s.sess.Delete(userKey)
	if err := s.sess.Save(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

func (s *CookieStore) AddFlash(kind, message string) error {
	b, err := json.Marshal(Notice{Kind: kind, Message: message})
	if err != nil {
		return err
	}
	s.sess.AddFlash(string(b))
	return s.sess.Save()
}

func (s *CookieStore) Flashes() []Notice {
	raw := s.sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.sess.Save()

	out := make([]Notice, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var n Notice
		if err := json.Unmarshal([]byte(str), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
