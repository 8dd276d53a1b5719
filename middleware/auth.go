package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ChatKeep/pkg/config"
	tokenstore "ChatKeep/pkg/token"
)

const (
	ContextUserIDKey   = "current_user_id"
	ContextJTIKey      = "current_jti"
	ContextTokenExpKey = "current_token_exp"
)

// All authentication failures get the same body: which check failed is not
// the caller's business.
const unauthenticatedMsg = "Unauthenticated"

// AuthMiddleware verifies the bearer token and stashes the caller's identity
// in the request context. Every scoped read and write downstream trusts this
// identity and nothing else.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			reject(c)
			return
		}

		userID, jti, exp, ok := VerifyToken(parts[1])
		if !ok {
			reject(c)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextJTIKey, jti)
		c.Set(ContextTokenExpKey, exp)
		c.Next()
	}
}

// VerifyToken validates an HMAC-signed JWT and returns the subject, jti and
// expiry. Shared with the websocket endpoint, which authenticates via a
// query parameter instead of a header.
func VerifyToken(tokenStr string) (userID, jti string, exp time.Time, ok bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// only accept HMAC signing
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", time.Time{}, false
	}
	claims, okClaims := token.Claims.(jwt.MapClaims)
	if !okClaims {
		return "", "", time.Time{}, false
	}

	jti, _ = claims["jti"].(string)
	if tokenstore.IsRevoked(jti) {
		return "", "", time.Time{}, false
	}

	if sub, okSub := claims["sub"].(string); okSub {
		userID = sub
	} else if subf, okSub := claims["sub"].(float64); okSub {
		// jwt lib may parse numeric as float64
		userID = strconv.Itoa(int(subf))
	}
	if userID == "" {
		return "", "", time.Time{}, false
	}

	if expf, okExp := claims["exp"].(float64); okExp {
		exp = time.Unix(int64(expf), 0)
	}
	return userID, jti, exp, true
}

func reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": unauthenticatedMsg})
}
