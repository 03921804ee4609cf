package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/internal/app/service/statistics"
	"github.com/growthlab/boostup/pkg/authz"
	"github.com/growthlab/boostup/pkg/config"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/response"
)

// accessClaims is the token payload issued by the auth provider. Subject
// carries the user ID.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	cfg      *config.Config
	policy   authz.Policy
	accounts *statistics.Service
	log      *zap.SugaredLogger
}

func NewAuthMiddleware(cfg *config.Config, policy authz.Policy, accounts *statistics.Service, log *zap.SugaredLogger) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, policy: policy, accounts: accounts, log: log}
}

// RequireAuth validates the bearer token, rejects banned users, and sets
// user_id and email on the gin context. The local account row is created
// lazily on first sight.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "authorization required"))
			c.Abort()
			return
		}

		claims := &accessClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "invalid or expired token"))
			c.Abort()
			return
		}

		userID := claims.Subject
		if userID == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "invalid token claims"))
			c.Abort()
			return
		}

		banned, err := m.accounts.IsBanned(c.Request.Context(), userID)
		if err != nil {
			logctx.FromGin(c, m.log).Errorf("failed to check ban state for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, "internal error"))
			c.Abort()
			return
		}
		if banned {
			c.JSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "account banned"))
			c.Abort()
			return
		}

		if err := m.accounts.EnsureAccount(c.Request.Context(), userID, claims.Email); err != nil {
			logctx.FromGin(c, m.log).Errorf("failed to ensure account for %s: %v", userID, err)
		}

		c.Set("user_id", userID)
		c.Set("email", claims.Email)
		c.Request = c.Request.WithContext(logctx.WithUser(c.Request.Context(), userID))
		c.Next()
	}
}

// RequireAdmin gates admin routes on the injected allow-list policy. It must
// run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "user not authenticated"))
			c.Abort()
			return
		}
		if !m.policy.IsAdmin(userID) {
			c.JSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
