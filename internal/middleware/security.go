package middleware

import (
	"net/http"
	"strconv"
)

// SecureHeaders sets response headers for an API that only serves JSON and
// workbook downloads. Nothing it returns is meant to be framed, scripted or
// cached by intermediaries.
type SecureHeaders struct {
	// HSTSMaxAge is in seconds; zero disables the header. Sent only over TLS.
	HSTSMaxAge int
	Static     map[string]string
}

// DefaultSecureHeaders returns the headers used by the analysis API.
func DefaultSecureHeaders() *SecureHeaders {
	return &SecureHeaders{
		HSTSMaxAge: 63072000,
		Static: map[string]string{
			"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
			"X-Frame-Options":         "DENY",
			"X-Content-Type-Options":  "nosniff",
			"Referrer-Policy":         "strict-origin-when-cross-origin",
			"Permissions-Policy":      "camera=(), geolocation=(), microphone=(), payment=(), usb=()",
			// Uploaded datasets and their results are private to the caller.
			"Cache-Control":      "no-store",
			"X-Download-Options": "noopen",
		},
	}
}

// Handler returns the middleware handler
func (sh *SecureHeaders) Handler(next http.Handler) http.Handler {
	var hsts string
	if sh.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(sh.HSTSMaxAge) + "; includeSubDomains"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range sh.Static {
			if v != "" {
				h.Set(k, v)
			}
		}
		if hsts != "" && r.TLS != nil {
			h.Set("Strict-Transport-Security", hsts)
		}
		next.ServeHTTP(w, r)
	})
}
