package httpx

import (
	"context"
	"errors"
)

var ErrTokenRejected = errors.New("static bearer token rejected")

// StaticToken authenticates with a preconfigured token. It cannot obtain a
// new one, so a 401 from the upstream ends the exchange with ErrTokenRejected.
type StaticToken struct {
	token string
}

func NewStaticToken(token string) StaticToken {
	return StaticToken{token: token}
}

func (s StaticToken) Authenticate(context.Context) error {
	return ErrTokenRejected
}

func (s StaticToken) BearerToken() string {
	return s.token
}
