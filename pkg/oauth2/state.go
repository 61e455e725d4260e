package oauth2

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// DefaultStateTTL bounds how long a user has to complete the provider login.
const DefaultStateTTL = 10 * time.Minute

// stateBytes is the entropy of a state value. It is hex encoded on the wire.
const stateBytes = 32

var ErrStateCookieKey = errors.New("state cookie hash key is required")

// NewState returns a fresh unguessable state value.
func NewState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// StateCookieOptions configures the cookie carrying the anti-CSRF state.
type StateCookieOptions struct {
	// HashKey authenticates the cookie value (32 or 64 bytes recommended).
	HashKey []byte
	// BlockKey encrypts it when set (16, 24 or 32 bytes).
	BlockKey []byte
	TTL      time.Duration
	Path     string
	Domain   string
	Secure   bool
}

// StateCookie signs, encrypts and reads the state cookie.
type StateCookie struct {
	codec *securecookie.SecureCookie
	opts  StateCookieOptions
}

func NewStateCookie(opts StateCookieOptions) (*StateCookie, error) {
	if len(opts.HashKey) == 0 {
		return nil, ErrStateCookieKey
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultStateTTL
	}
	if opts.Path == "" {
		opts.Path = "/"
	}

	codec := securecookie.New(opts.HashKey, opts.BlockKey)
	codec.MaxAge(int(opts.TTL.Seconds()))

	return &StateCookie{codec: codec, opts: opts}, nil
}

// Write stores value under name.
func (s *StateCookie) Write(w http.ResponseWriter, name, value string) error {
	encoded, err := s.codec.Encode(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(name, encoded, int(s.opts.TTL.Seconds())))
	return nil
}

// Read returns the decoded value, or "" when the cookie is missing, tampered
// with or expired.
func (s *StateCookie) Read(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	var value string
	if err := s.codec.Decode(name, c.Value, &value); err != nil {
		return ""
	}
	return value
}

// Clear expires the cookie on the user agent.
func (s *StateCookie) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, s.cookie(name, "", -1))
}

func (s *StateCookie) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     s.opts.Path,
		Domain:   s.opts.Domain,
		MaxAge:   maxAge,
		Secure:   s.opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
