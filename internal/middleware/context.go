package middleware

import "context"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the authenticated account identity
	IdentityKey contextKey = "identity"
	// RoleKey is the context key for the token role claim
	RoleKey contextKey = "role"
)

// WithIdentity adds the account identity to the context
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity retrieves the account identity from context
func GetIdentity(ctx context.Context) string {
	if identity, ok := ctx.Value(IdentityKey).(string); ok {
		return identity
	}
	return EmptyIdentity
}

// WithRole adds the token role to the context
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

// GetRole retrieves the token role from context
func GetRole(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}
