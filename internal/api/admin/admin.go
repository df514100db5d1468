package admin

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/service"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AdminHandler 处理后台仪表盘请求，所有路由都要求管理员角色
type AdminHandler struct {
	adminService service.AdminServiceInterface
	monitor      *middleware.ErrorMonitor
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(adminService service.AdminServiceInterface, monitor *middleware.ErrorMonitor) *AdminHandler {
	return &AdminHandler{adminService, monitor}
}

func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的资源ID", err))
		return primitive.NilObjectID, false
	}
	return id, true
}

// ListUsers 返回全部用户
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"users": users,
	}, "")
}

// DeleteUser 删除用户。帖子保留原作者引用，不级联清理
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		util.Logger.Error("后台删除用户失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "用户删除成功")
}

// ListPosts 返回全部帖子
func (h *AdminHandler) ListPosts(c *gin.Context) {
	posts, err := h.adminService.ListPosts(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// DeletePost 删除帖子，清理策略与普通删除一致
func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeletePost(c.Request.Context(), id); err != nil {
		util.Logger.Error("后台删除帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "帖子删除成功")
}

// ListComments 返回全部评论
func (h *AdminHandler) ListComments(c *gin.Context) {
	comments, err := h.adminService.ListComments(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comments": comments,
	}, "")
}

// DeleteComment 删除评论并摘除帖子中的引用
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteComment(c.Request.Context(), id); err != nil {
		util.Logger.Error("后台删除评论失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "评论删除成功")
}

// GetSystemStats 返回系统统计和错误计数
func (h *AdminHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"stats":       stats,
		"errorCounts": h.monitor.GetErrorCounts(),
	}, "")
}
