package user

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoritesHandler 处理收藏相关请求
type FavoritesHandler struct {
	userService service.UserServiceInterface
}

// NewFavoritesHandler 创建一个新的 FavoritesHandler 实例
func NewFavoritesHandler(userService service.UserServiceInterface) *FavoritesHandler {
	return &FavoritesHandler{userService}
}

// ToggleFavorite 翻转收藏状态并返回最新的收藏列表
func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	favorites, err := h.userService.ToggleFavorite(c.Request.Context(), userID, postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"favorites": favorites,
	}, "收藏已更新")
}

// ListFavorites 返回收藏的帖子，只包含带媒体的
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	favorites, err := h.userService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"favorites": favorites,
	}, "")
}
