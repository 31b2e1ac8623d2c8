package api

import (
	"net/http"
	"strings"

	"github.com/afsumeem/recipe-share-backend/tokenmanager/token"
	"github.com/gin-gonic/gin"
)

const authorizationEmailKey = "authorization_email"

// authMiddleware verifies the bearer credential on protected routes and
// stores the verified email in the request context. A missing or malformed
// header is 401; a token that does not verify is 403.
func authMiddleware(tokenMaker *token.JWTMaker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(ErrMissingAuthorization))
			return
		}

		payload, err := tokenMaker.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse(err))
			return
		}

		ctx.Set(authorizationEmailKey, payload.Email)
		ctx.Next()
	}
}

// authEmail returns the email the auth middleware verified for this request.
func authEmail(ctx *gin.Context) string {
	return ctx.GetString(authorizationEmailKey)
}
