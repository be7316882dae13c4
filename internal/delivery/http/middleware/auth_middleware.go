package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"placement-hub/internal/domain/company"
	"placement-hub/internal/domain/student"
	"placement-hub/internal/domain/user"
	"placement-hub/internal/pkg/jwt"
	"placement-hub/internal/pkg/principal"
)

const CtxPrincipalKey = "principal"

type AuthMiddleware struct {
	jwt       jwt.Service
	students  student.Repository
	companies company.Repository
}

func NewAuthMiddleware(jwtSvc jwt.Service, students student.Repository, companies company.Repository) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, students: students, companies: companies}
}

// Middleware authenticates the bearer token and resolves the caller's role
// profile id into a principal stored in Locals.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", err)
		}

		p := principal.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}

		profileID, err := m.resolveProfileID(c.Context(), claims)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", err)
		}
		p.ProfileID = profileID

		c.Locals(CtxPrincipalKey, p)
		return c.Next()
	}
}

// RequireRole rejects authenticated callers with the wrong role.
func RequireRole(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
		}
		for _, role := range roles {
			if p.Role == role {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Not authorized", nil)
	}
}

func PrincipalFromCtx(c fiber.Ctx) (principal.Principal, bool) {
	p, ok := c.Locals(CtxPrincipalKey).(principal.Principal)
	return p, ok
}

func (m *AuthMiddleware) resolveProfileID(ctx context.Context, claims jwt.Claims) (uuid.UUID, error) {
	switch claims.Role {
	case user.RoleStudent:
		p, err := m.students.GetByUserID(ctx, claims.UserID)
		if err != nil {
			return uuid.Nil, err
		}
		return p.ID, nil
	case user.RoleCompany:
		p, err := m.companies.GetByUserID(ctx, claims.UserID)
		if err != nil {
			return uuid.Nil, err
		}
		return p.ID, nil
	}
	return uuid.Nil, nil
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
