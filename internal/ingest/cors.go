package ingest

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/zjrosen/dbug/internal/config"
)

// baseMethods are allowed regardless of configuration.
var baseMethods = []string{http.MethodPost, http.MethodOptions}

// corsPolicy is CORSConfig with its header values precomputed.
type corsPolicy struct {
	anyOrigin bool
	origins   []string
	methods   []string
	allowM    string
	allowH    string
	maxAge    string
}

func newCORSPolicy(cfg config.CORSConfig) corsPolicy {
	p := corsPolicy{}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			p.anyOrigin = true
			continue
		}
		p.origins = append(p.origins, strings.TrimRight(o, "/"))
	}

	p.methods = append(p.methods, baseMethods...)
	for _, m := range cfg.AllowedMethods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" && !slices.Contains(p.methods, m) {
			p.methods = append(p.methods, m)
		}
	}
	p.allowM = strings.Join(p.methods, ", ")
	p.allowH = strings.Join(cfg.AllowedHeaders, ", ")
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	}
	return p
}

func (p corsPolicy) allowsOrigin(origin string) bool {
	return p.anyOrigin || slices.Contains(p.origins, origin)
}

// corsMiddleware answers preflight requests itself and decorates every
// other response with the allowed origin.
func corsMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && policy.allowsOrigin(origin)

			if allowed {
				if policy.anyOrigin {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if origin != "" && !allowed {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			if reqMethod := r.Header.Get("Access-Control-Request-Method"); reqMethod != "" &&
				!slices.Contains(policy.methods, strings.ToUpper(reqMethod)) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", policy.allowM)
			if policy.allowH != "" {
				w.Header().Set("Access-Control-Allow-Headers", policy.allowH)
			}
			if policy.maxAge != "" {
				w.Header().Set("Access-Control-Max-Age", policy.maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
