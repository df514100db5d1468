package comment

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/service"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CommentHandler 处理评论相关请求
type CommentHandler struct {
	commentService service.CommentServiceInterface
}

// NewCommentHandler 创建一个新的 CommentHandler 实例
func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{commentService}
}

type createCommentRequest struct {
	PostID  string `json:"postId" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// CreateComment 发表评论
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "请求参数错误", err))
		return
	}

	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, postID, req.Comment)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comment": comment,
	}, "评论发表成功")
}

// ListComments 返回全部评论，最新的在前
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListComments(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comments": comments,
	}, "")
}
