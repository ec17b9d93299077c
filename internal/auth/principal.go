package auth

import (
	"context"

	"homeward/pkg/model"
)

// Principal is the immutable (identity, role) pair resolved once per request.
// UserID is empty for allow-listed admins that have no stored user record.
type Principal struct {
	UserID      string
	ExternalID  string
	Username    string
	DisplayName string
	Role        string
}

// Anonymous is the principal for requests without a usable identity.
var Anonymous = Principal{Role: model.RoleUser}

func (p Principal) IsAuthenticated() bool {
	return p.ExternalID != ""
}

func (p Principal) IsEmployee() bool {
	return p.Role == model.RoleEmployee || p.Role == model.RoleAdmin
}

func (p Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}

// ReviewerName resolves the human-readable identity recorded on completed
// visits: display name first, then username, then the raw external id.
func (p Principal) ReviewerName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Username != "" {
		return p.Username
	}
	if p.ExternalID != "" {
		return p.ExternalID
	}
	return "Employee"
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok {
		return p
	}
	return Anonymous
}
