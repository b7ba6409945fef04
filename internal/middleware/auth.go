package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Khursands/Online-Pharmacy/pkg/jwt"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxUserRole  = "user_role"
)

// Auth 校验 Bearer 令牌并把身份写入上下文；错误信息保持笼统
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Access token required")
			return
		}
		claims, err := jwt.ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole 必须在 Auth 之后使用
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentUserRole(c)
		if role == "" {
			response.Unauthorized(c, "Access token required")
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient permissions")
	}
}

// CurrentUserID 当前登录用户ID
func CurrentUserID(c *gin.Context) string { return c.GetString(ctxUserID) }

// CurrentUserRole 当前登录用户角色
func CurrentUserRole(c *gin.Context) string { return c.GetString(ctxUserRole) }
