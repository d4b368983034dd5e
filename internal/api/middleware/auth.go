package middleware

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/utils"
)

type contextKey string

const principalKey contextKey = "principal"

// Decision is the outcome of the access policy for one request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthorized
	DecisionRedirect
)

// Pages that need a session; anonymous visitors are sent to the login page.
var protectedPagePrefixes = []string{"/dashboard"}

// API paths reachable without a session.
var publicAPIPrefixes = []string{"/api/auth", "/api/models/public", "/api/categories"}

// Method-qualified API routes where a session is optional. "*" matches one segment.
var optionalAuthRoutes = []struct {
	method  string
	pattern string
}{
	{http.MethodGet, "/api/models/*"},
	{http.MethodGet, "/api/models/*/download"},
}

// Decide applies the access policy. It is a pure function of the request line and
// whether the caller presented a valid session.
func Decide(method, rawPath string, authenticated bool) Decision {
	if method == http.MethodOptions || authenticated {
		return DecisionAllow
	}

	p := path.Clean("/" + rawPath)
	if hasAnyPrefix(p, protectedPagePrefixes) {
		return DecisionRedirect
	}
	if !hasPrefix(p, "/api") {
		return DecisionAllow
	}
	if hasAnyPrefix(p, publicAPIPrefixes) {
		return DecisionAllow
	}
	for _, route := range optionalAuthRoutes {
		if route.method == method && matchSegments(route.pattern, p) {
			return DecisionAllow
		}
	}
	return DecisionUnauthorized
}

// LoginURL is where anonymous page requests for p are redirected.
func LoginURL(p string) string {
	return "/login?callbackUrl=" + url.QueryEscape(p)
}

// hasPrefix matches whole path segments, so /api/authx is not under /api/auth.
func hasPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func hasAnyPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if hasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, p string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(p, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != "*" && want[i] != got[i] {
			return false
		}
	}
	return true
}

// TokenParser resolves a session token into a principal.
type TokenParser interface {
	Parse(token string) (*services.Principal, error)
}

// AccessGate resolves the caller's session and enforces Decide before any handler runs.
func AccessGate(tokens TokenParser, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var principal *services.Principal
			if raw := sessionToken(r); raw != "" {
				p, err := tokens.Parse(raw)
				if err != nil {
					log.Debug("rejected session token", zap.String("path", r.URL.Path), zap.Error(err))
				} else {
					principal = p
				}
			}

			switch Decide(r.Method, r.URL.Path, principal != nil) {
			case DecisionUnauthorized:
				utils.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
				return
			case DecisionRedirect:
				http.Redirect(w, r, LoginURL(r.URL.Path), http.StatusFound)
				return
			}

			if principal != nil {
				r = r.WithContext(WithPrincipal(r.Context(), principal))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(services.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func WithPrincipal(ctx context.Context, p *services.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (*services.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*services.Principal)
	return p, ok && p != nil
}
