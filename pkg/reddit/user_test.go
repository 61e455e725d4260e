package reddit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUser_AvatarURL(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "animated avatar",
			body: `{"id":"80351110224678912","username":"nelly","discriminator":"1337","avatar":"a_8342729096ea3675442027381ff50dfe"}`,
			want: "https://cdn.redditapp.com/avatars/80351110224678912/a_8342729096ea3675442027381ff50dfe.gif",
		},
		{
			name: "static avatar",
			body: `{"id":"80351110224678912","username":"nelly","discriminator":"1337","avatar":"8342729096ea3675442027381ff50dfe"}`,
			want: "https://cdn.redditapp.com/avatars/80351110224678912/8342729096ea3675442027381ff50dfe.png",
		},
		{
			name: "no avatar uses discriminator mod 5",
			body: `{"id":"1","username":"nelly","discriminator":"1337","avatar":null}`,
			want: "https://cdn.redditapp.com/embed/avatars/2.png",
		},
		{
			name: "numeric discriminator",
			body: `{"id":"1","username":"nelly","discriminator":9}`,
			want: "https://cdn.redditapp.com/embed/avatars/4.png",
		},
		{
			name: "empty avatar string",
			body: `{"id":"1","username":"nelly","discriminator":"0005","avatar":""}`,
			want: "https://cdn.redditapp.com/embed/avatars/0.png",
		},
		{
			name: "missing discriminator",
			body: `{"id":"1","username":"nelly"}`,
			want: "https://cdn.redditapp.com/embed/avatars/0.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := normalizeUser([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, user.AvatarURL)
		})
	}
}

func TestNormalizeUser_EmailVerificationState(t *testing.T) {
	tests := []struct {
		name string
		body string
		want EmailVerificationState
	}{
		{name: "verified", body: `{"id":"1","verified":true}`, want: EmailVerified},
		{name: "unverified", body: `{"id":"1","verified":false}`, want: EmailUnverified},
		{name: "absent", body: `{"id":"1"}`, want: EmailUnsupported},
		{name: "null", body: `{"id":"1","verified":null}`, want: EmailUnsupported},
		{name: "not a boolean", body: `{"id":"1","verified":"yes"}`, want: EmailUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := normalizeUser([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, user.EmailVerificationState)
		})
	}
}

func TestNormalizeUser_Fields(t *testing.T) {
	body := `{"id":"42","username":"nelly","discriminator":"1337","avatar":"abc","email":"nelly@example.com","verified":true,"locale":"en-US"}`

	user, err := normalizeUser([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "nelly#1337", user.Name)
	assert.Equal(t, "nelly", user.NickName)
	assert.Equal(t, "nelly@example.com", user.Email)
	assert.Equal(t, "en-US", user.Original["locale"])
	assert.Equal(t, true, user.Original["verified"])
}

func TestNormalizeUser_WithoutEmailScope(t *testing.T) {
	user, err := normalizeUser([]byte(`{"id":123,"username":"nelly"}`))
	require.NoError(t, err)

	assert.Equal(t, "123", user.ID)
	assert.Equal(t, "nelly", user.Name)
	assert.Empty(t, user.Email)
	assert.Equal(t, EmailUnsupported, user.EmailVerificationState)
}

func TestNormalizeUser_Invalid(t *testing.T) {
	for _, body := range []string{`not json`, `[1,2]`, `"string"`} {
		_, err := normalizeUser([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidUserInfo, "body %q", body)
	}
}
