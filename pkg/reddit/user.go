package reddit

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/stringfold/ally/pkg/oauth2"

	"github.com/tidwall/gjson"
)

const (
	avatarBaseURL        = "https://cdn.redditapp.com/avatars"
	defaultAvatarBaseURL = "https://cdn.redditapp.com/embed/avatars"
	animatedAvatarPrefix = "a_"
	defaultAvatarCount   = 5
)

var ErrInvalidUserInfo = errors.New("invalid user info response")

// EmailVerificationState tells whether the provider vouches for the email.
type EmailVerificationState string

const (
	EmailVerified    EmailVerificationState = "verified"
	EmailUnverified  EmailVerificationState = "unverified"
	EmailUnsupported EmailVerificationState = "unsupported"
)

// User is the normalized Reddit profile.
type User struct {
	ID                     string                 `json:"id"`
	Name                   string                 `json:"name"`
	NickName               string                 `json:"nick_name"`
	AvatarURL              string                 `json:"avatar_url"`
	Email                  string                 `json:"email,omitempty"`
	EmailVerificationState EmailVerificationState `json:"email_verification_state"`
	Original               map[string]any         `json:"original"`
	Token                  oauth2.Token           `json:"token"`
}

func normalizeUser(body []byte) (*User, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidUserInfo)
	}
	res := gjson.ParseBytes(body)
	original, ok := res.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a json object", ErrInvalidUserInfo)
	}

	id := res.Get("id").String()
	username := res.Get("username").String()
	discriminator := res.Get("discriminator")

	name := username
	if d := discriminator.String(); d != "" {
		name = username + "#" + d
	}

	email := ""
	if e := res.Get("email"); e.Type == gjson.String {
		email = e.Str
	}

	return &User{
		ID:                     id,
		Name:                   name,
		NickName:               username,
		AvatarURL:              avatarURL(id, res.Get("avatar"), discriminator),
		Email:                  email,
		EmailVerificationState: verificationState(res.Get("verified")),
		Original:               original,
	}, nil
}

// avatarURL points at the uploaded avatar, animated when the hash carries the
// a_ prefix. Users without one get a default avatar picked by discriminator.
func avatarURL(id string, avatar, discriminator gjson.Result) string {
	if avatar.Type == gjson.String && avatar.Str != "" {
		ext := "png"
		if strings.HasPrefix(avatar.Str, animatedAvatarPrefix) {
			ext = "gif"
		}
		return fmt.Sprintf("%s/%s/%s.%s", avatarBaseURL, url.PathEscape(id), url.PathEscape(avatar.Str), ext)
	}
	return fmt.Sprintf("%s/%s.png", defaultAvatarBaseURL, strconv.FormatInt(defaultAvatarIndex(discriminator), 10))
}

// defaultAvatarIndex is discriminator % 5. Missing or non-numeric
// discriminators map to 0.
func defaultAvatarIndex(discriminator gjson.Result) int64 {
	n := discriminator.Int() % defaultAvatarCount
	if n < 0 {
		n += defaultAvatarCount
	}
	return n
}

func verificationState(verified gjson.Result) EmailVerificationState {
	switch verified.Type {
	case gjson.True:
		return EmailVerified
	case gjson.False:
		return EmailUnverified
	default:
		return EmailUnsupported
	}
}
