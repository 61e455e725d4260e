package oauth2

import (
	"strings"
	"time"

	xoauth2 "golang.org/x/oauth2"
)

// Token is the access token issued by a provider.
type Token struct {
	Token  string    `json:"token"`
	Type   string    `json:"type"`
	Expiry time.Time `json:"expires_at,omitempty"`
	Scope  []string  `json:"scope,omitempty"`
}

// BearerToken wraps a raw access token obtained elsewhere.
func BearerToken(token string) Token {
	return Token{Token: token, Type: "bearer"}
}

func newToken(t *xoauth2.Token, separator string) *Token {
	tok := &Token{
		Token:  t.AccessToken,
		Type:   strings.ToLower(t.Type()),
		Expiry: t.Expiry,
	}
	if s, ok := t.Extra("scope").(string); ok && s != "" {
		for _, scope := range strings.Split(s, separator) {
			if scope = strings.TrimSpace(scope); scope != "" {
				tok.Scope = append(tok.Scope, scope)
			}
		}
	}
	return tok
}

// Expired reports whether the token has a known expiry in the past.
func (t Token) Expired() bool {
	return !t.Expiry.IsZero() && time.Now().After(t.Expiry)
}
