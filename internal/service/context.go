package service

import (
	"context"

	"github.com/zemenu6/dbrand-backend/internal/models"

	"github.com/google/uuid"
)

// Principal — аутентифицированный пользователь текущего запроса.
// Передаётся явно через context, никакого глобального состояния.
type Principal struct {
	UserID uuid.UUID
	Role   models.Role
}

func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

type ctxKey string

const ctxPrincipalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	v, ok := ctx.Value(ctxPrincipalKey).(Principal)
	return v, ok
}

func requireAuth(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return Principal{}, ErrUnauthorized
	}
	return p, nil
}
