package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

const stsMaxAge = 180 * 24 * 60 * 60

// SecureHeaders returns a middleware that sets browser security headers on
// every response. Strict-Transport-Security is only sent over TLS.
func SecureHeaders() func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		ContentTypeNosniff:            true,
		FrameDeny:                     true,
		CustomFrameOptionsValue:       "SAMEORIGIN",
		STSSeconds:                    stsMaxAge,
		STSIncludeSubdomains:          true,
		ReferrerPolicy:                "no-referrer",
		CrossOriginOpenerPolicy:       "same-origin",
		XDNSPrefetchControl:           "off",
		XPermittedCrossDomainPolicies: "none",
	}).Handler
}
