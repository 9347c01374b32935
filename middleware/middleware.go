package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"ladle/globals"
	"ladle/logger"
	"ladle/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// Claims carried by the identity provider's tokens. This service never issues
// tokens; it only verifies and unpacks them.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func userIDFromRequest(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// Authenticate rejects requests without a valid identity.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing token")
			return
		}
		ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches the identity when present and lets anonymous
// requests through.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if userID, ok := userIDFromRequest(r); ok {
			ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
			r = r.WithContext(ctx)
		}
		next(w, r, ps)
	}
}

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Log.Error().Interface("panic", err).Msg("panic recovered")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
