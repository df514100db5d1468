package middleware

import (
	"context"
	"strings"
	"time"

	"blog-backend/internal/errors"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey 是认证通过后注入请求上下文的用户ID键
const ContextUserIDKey = "user_id"

// AuthMiddleware 验证 Bearer 令牌并把用户ID注入请求上下文。
// 任何验证失败（缺失、格式错误、过期、签名不符）都直接拒绝请求。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效的认证格式"))
			c.Abort()
			return
		}

		userID, err := util.ValidateToken(parts[1])
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "无效或过期的令牌", err))
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
