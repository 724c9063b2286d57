package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vend_kiosk/pkg/logx"
	"vend_kiosk/pkg/middlewarex"
)

// NewRouter mounts the API behind the common middleware chain.
func NewRouter(s Server, logFieldMaxLen int) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}
