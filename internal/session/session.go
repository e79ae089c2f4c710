package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleFrontDesk Role = "FRONT_DESK"
	RoleNurse     Role = "NURSE"
	RoleDoctor    Role = "DOCTOR"
	RoleAdmin     Role = "ADMIN"
)

// Session is the authenticated state of one desk terminal. The credential is
// an opaque bearer token as far as the gateway is concerned; role and display
// name are convenience copies of its claims.
type Session struct {
	Credential  string `json:"credential"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}

var ErrBadCredential = errors.New("credential is not a decodable token")

// FromCredential builds a Session from a bearer token issued by the backend.
// The token is decoded without signature verification: the client has no key
// material and the backend re-validates the credential on every call anyway.
func FromCredential(credential string) (Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return Session{}, ErrBadCredential
	}

	s := Session{Credential: credential}
	if sub, ok := claims["sub"].(string); ok {
		s.DisplayName = sub
	}
	if role, ok := claims["role"].(string); ok {
		s.Role = Role(role)
	}
	return s, nil
}
