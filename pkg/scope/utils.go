package scope

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
)

type PayloadCtxKey struct{}

// SetPayloadToContext sets the payload to context.
func SetPayloadToContext(ctx context.Context, payload Payload) context.Context {
	return context.WithValue(ctx, PayloadCtxKey{}, payload)
}

// GetPayloadFromContext gets the payload from context.
func GetPayloadFromContext(ctx context.Context) (Payload, bool) {
	payload, ok := ctx.Value(PayloadCtxKey{}).(Payload)
	return payload, ok
}

// GetScopeFromContext builds model.Scope from the context payload.
func GetScopeFromContext(ctx context.Context) (model.Scope, error) {
	payload, ok := GetPayloadFromContext(ctx)
	if !ok {
		return model.Scope{}, ErrNoPayload
	}
	return NewScope(payload), nil
}
