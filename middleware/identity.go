package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/directory"
	"github.com/seamless/timesheet/userctx"
)

// IdentityResolver resolves the caller identity for every request from the
// SSO credentials header and injects it into the request context as a typed
// Identity, so handlers never read headers themselves.
type IdentityResolver struct {
	headerName      string
	devMode         bool
	devFallbackUser string
	directory       *directory.Client
}

// NewIdentityResolver creates the identity middleware
func NewIdentityResolver(cfg *config.Config, dir *directory.Client) *IdentityResolver {
	return &IdentityResolver{
		headerName:      cfg.Auth.CredentialsHeader,
		devMode:         cfg.IsDevelopment(),
		devFallbackUser: cfg.Auth.DevFallbackUser,
		directory:       dir,
	}
}

type credentials struct {
	User string `json:"user"`
}

// Handler wraps next with identity resolution. When the SSO header is
// present it is authoritative: a malformed or empty header is a 401, never a
// fall-through to the dev override. The ?user= override only applies in dev
// mode with no header at all.
func (m *IdentityResolver) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(m.headerName)

		if header != "" {
			var creds credentials
			if err := json.Unmarshal([]byte(header), &creds); err != nil || creds.User == "" {
				log.Printf("Failed to parse credentials header: %q", header)
				writeAuthError(w)
				return
			}

			email := m.directory.LookupEmail(r.Context(), creds.User)
			identity := userctx.Identity{Email: email, Source: userctx.SourceSSOHeader}
			next.ServeHTTP(w, r.WithContext(userctx.WithIdentity(r.Context(), identity)))
			return
		}

		if m.devMode {
			user := r.URL.Query().Get("user")
			if user == "" {
				user = m.devFallbackUser
			}
			identity := userctx.Identity{Email: user, Source: userctx.SourceDevOverride}
			next.ServeHTTP(w, r.WithContext(userctx.WithIdentity(r.Context(), identity)))
			return
		}

		writeAuthError(w)
	})
}

func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "unable to identify user, please ensure you are logged in",
	})
}
