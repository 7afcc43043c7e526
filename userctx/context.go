package userctx

import "context"

type contextKey string

const identityKey contextKey = "identity"

// IdentitySource records how the caller's identity was resolved.
type IdentitySource string

const (
	SourceSSOHeader   IdentitySource = "sso_header"
	SourceDevOverride IdentitySource = "dev_override"
)

// Identity is the resolved caller identity for one request.
type Identity struct {
	Email  string
	Source IdentitySource
}

// WithIdentity adds the caller identity to the request context
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the caller identity from the request context
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// Email returns the caller's email, or "" when no identity was resolved
func Email(ctx context.Context) string {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return ""
	}
	return identity.Email
}
