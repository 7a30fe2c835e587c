// Package middleware provides HTTP middleware for the Burme Mark API.
package middleware

import "net/http"

// CORS returns middleware that handles CORS headers. Content-Disposition is
// exposed so browser callers can read the backup download filename.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originAllowed(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
				// Credentials only for explicit origins. Allow-Credentials
				// with a wildcard-echoed origin enables CSRF.
				if originListed(allowedOrigins, origin) {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, o := range allowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func originListed(allowedOrigins []string, origin string) bool {
	for _, o := range allowedOrigins {
		if o != "*" && o == origin {
			return true
		}
	}
	return false
}
