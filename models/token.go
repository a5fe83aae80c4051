package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a session JWT.
//
// The "sub" claim carries the username of the session owner. SignedString
// holds the compact form sent in the access_token cookie.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	// Username is the parsed subject, filled by the token resolver.
	Username string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
