package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	roleKey   ctxKey = "userRole"
)

// Auth проверяет заголовки аутентификации, проставляемые API-шлюзом
// X-User-ID обязателен; X-User-Role опционален и по умолчанию student
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get("X-User-ID")
		if rawID == "" {
			http.Error(w, `{"error":"требуется аутентификация"}`, http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, `{"error":"некорректный X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		role := domain.RoleStudent
		if rawRole := r.Header.Get("X-User-Role"); rawRole != "" {
			parsed, ok := domain.ParseActorRole(rawRole)
			if !ok {
				http.Error(w, `{"error":"некорректный X-User-Role"}`, http.StatusUnauthorized)
				return
			}
			role = parsed
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID аутентифицированного пользователя из контекста
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Role возвращает роль аутентифицированного пользователя из контекста
// Если роли в контексте нет, возвращается student
func Role(ctx context.Context) domain.ActorRole {
	role, ok := ctx.Value(roleKey).(domain.ActorRole)
	if !ok {
		return domain.RoleStudent
	}
	return role
}
