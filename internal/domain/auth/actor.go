package auth

import (
	"context"
	"fmt"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Actor is the already-authenticated identity extracted from token claims.
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  user.Role
}

// ActorFromContext extracts the acting identity from the jwtauth claims placed
// on the request context by the token verifier.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrMissingActor
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return Actor{}, ErrInvalidRole
	}
	role := user.Role(roleStr)
	if !role.IsValid() {
		return Actor{}, ErrInvalidRole
	}

	actor := Actor{ID: userID, Role: role}
	if name, ok := claims["full_name"].(string); ok {
		actor.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		actor.Email = email
	}

	return actor, nil
}
