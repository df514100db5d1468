package middleware

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/service"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AdminMiddleware 确保只有管理员可以访问后台路由，
// 必须挂在 AuthMiddleware 之后
func AdminMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserIDKey)
		if !exists {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(c.Request.Context(), userID.(primitive.ObjectID))
		if err != nil || user.Role != model.RoleAdmin {
			util.Logger.Warn("非管理员访问后台接口",
				zap.String("user_id", userID.(primitive.ObjectID).Hex()),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			errors.HandleError(c, errors.New(errors.ErrForbidden, "需要管理员权限"))
			c.Abort()
			return
		}

		c.Next()
	}
}
