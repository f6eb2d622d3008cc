package auth

import (
	"context"

	"trimmers-api/internal/model"
)

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the authenticated actor of a request, if any.
func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(model.Actor)
	return actor, ok
}

// CheckPermissions allows admins and the owner of a resource.
func CheckPermissions(actor model.Actor, ownerID string) error {
	if actor.IsAdmin() || actor.UserID == ownerID {
		return nil
	}
	return model.ErrNotPermitted
}
