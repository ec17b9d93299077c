package auth

import (
	"context"
	"errors"

	userserrors "homeward/internal/users/errors"
	"homeward/pkg/config"
	"homeward/pkg/model"
)

// UserSource is the slice of the user repository the resolver needs.
type UserSource interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
}

// Resolver turns verified token claims into a Principal. The stored user
// record is re-read on every request so a role change takes effect
// immediately; the stored role is authoritative. An allow-listed external id
// with no stored record resolves to ADMIN for that request only, nothing is
// persisted.
type Resolver struct {
	cfg   *config.Config
	users UserSource
}

func NewResolver(cfg *config.Config, users UserSource) *Resolver {
	return &Resolver{
		cfg:   cfg,
		users: users,
	}
}

func (r *Resolver) Resolve(ctx context.Context, claims *TokenClaims) (Principal, error) {
	if claims == nil || claims.ExternalID == "" {
		return Anonymous, nil
	}

	p := Principal{
		ExternalID:  claims.ExternalID,
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		Role:        model.RoleUser,
	}

	user, err := r.users.FindByExternalID(ctx, claims.ExternalID)
	switch {
	case err == nil:
		p.UserID = user.ID
		p.Role = user.Role
		if user.Username != nil && *user.Username != "" {
			p.Username = *user.Username
		}
		if user.DisplayName != nil && *user.DisplayName != "" {
			p.DisplayName = *user.DisplayName
		}
	case errors.Is(err, userserrors.ErrNotFound):
		// No record: the stored role is authoritative when present, so the
		// allow-list is consulted only here.
		if r.cfg.IsAdminExternalID(claims.ExternalID) {
			p.Role = model.RoleAdmin
		}
	default:
		return Anonymous, err
	}

	return p, nil
}
