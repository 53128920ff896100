/*
 * Copyright (c) 2021 ugradid community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AuthType selects how API calls are authenticated.
type AuthType string

const (
	// NoAuthAuthType leaves the API open.
	NoAuthAuthType AuthType = "noauth"
	// TokenAuthType requires a HS256 bearer token signed with the configured secret.
	TokenAuthType AuthType = "token"
)

// ErrMissingSecret is returned when token authentication is configured without a secret.
var ErrMissingSecret = errors.New("HTTP auth secret is required for token authentication")

// tokenIssuer is the "iss" claim of tokens created by CreateToken
const tokenIssuer = "ugradid-period"

var timeFunc = time.Now

// HTTPAuthenticator provides the middleware that guards the API routes.
type HTTPAuthenticator interface {
	authenticator() echo.MiddlewareFunc
}

type noopAuthenticator struct{}

func (n noopAuthenticator) authenticator() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(context echo.Context) error {
			return next(context)
		}
	}
}

// HTTPAuthenticatorProvider returns a factory for the authenticator of the given type.
func HTTPAuthenticatorProvider(secret string) func(authType AuthType) (HTTPAuthenticator, error) {
	return func(authType AuthType) (HTTPAuthenticator, error) {
		switch authType {
		case TokenAuthType:
			return NewTokenAuthenticator(secret)
		case NoAuthAuthType:
			fallthrough
		case "":
			return noopAuthenticator{}, nil
		default:
			return nil, fmt.Errorf("invalid auth type: %s", authType)
		}
	}
}

// NewTokenAuthenticator creates a TokenAuthenticator, secret can't be empty.
func NewTokenAuthenticator(secret string) (*TokenAuthenticator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenAuthenticator{secret: secret}, nil
}

// TokenAuthenticator checks HS256 bearer tokens.
type TokenAuthenticator struct {
	secret string
}

func (p *TokenAuthenticator) authenticator() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(p.secret),
		Skipper:    requestsStatusEndpoint,
	})
}

// CreateToken creates a token for the given subject, valid for the given duration. A zero validity never expires.
func (p *TokenAuthenticator) CreateToken(subject string, validity time.Duration) (string, error) {
	now := timeFunc()
	claims := jwt.StandardClaims{
		Issuer:   tokenIssuer,
		Subject:  subject,
		IssuedAt: now.Unix(),
	}
	if validity > 0 {
		claims.ExpiresAt = now.Add(validity).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.secret))
}
