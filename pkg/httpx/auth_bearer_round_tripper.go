package httpx

import (
	"context"
	"fmt"
	"net/http"
)

type authenticator interface {
	Authenticate(context.Context) error
	BearerToken() string
}

type AuthBearerRoundTripper struct {
	next          http.RoundTripper
	authenticator authenticator
}

func NewAuthBearerRoundTripper(
	next http.RoundTripper,
	authenticator authenticator,
) AuthBearerRoundTripper {
	return AuthBearerRoundTripper{
		next:          next,
		authenticator: authenticator,
	}
}

func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.authenticator.BearerToken() == "" {
		if err := rt.authenticator.Authenticate(req.Context()); err != nil {
			return nil, fmt.Errorf("authenticator.Authenticate: %w", err)
		}
	}

	resp, err := rt.next.RoundTrip(rt.authorized(req))
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	resp.Body.Close()

	if err = rt.authenticator.Authenticate(req.Context()); err != nil {
		return nil, fmt.Errorf("authenticator.Authenticate: %w", err)
	}

	retry := rt.authorized(req)

	// The first attempt consumed the body.
	if req.GetBody != nil {
		if retry.Body, err = req.GetBody(); err != nil {
			return nil, fmt.Errorf("req.GetBody: %w", err)
		}
	}

	return rt.next.RoundTrip(retry) //nolint:wrapcheck
}

// authorized clones req since a RoundTripper must not modify the request.
func (rt AuthBearerRoundTripper) authorized(req *http.Request) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+rt.authenticator.BearerToken())

	return clone
}
