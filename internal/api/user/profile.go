package user

import (
	"fmt"

	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/service"
	"blog-backend/internal/storage"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProfileHandler 处理资料更新请求
type ProfileHandler struct {
	userService service.UserServiceInterface
	storage     storage.Storage
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例
func NewProfileHandler(userService service.UserServiceInterface, storage storage.Storage) *ProfileHandler {
	return &ProfileHandler{userService, storage}
}

// UpdateProfile 更新用户名和/或头像（multipart 表单）。
// 两者至少提供一个；用户名冲突时整个调用失败，头像不会被应用。
// 服务层保存用户后会把新快照批量回写到该用户的全部帖子和评论。
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	username := c.PostForm("username")
	file, fileErr := c.FormFile("avatar")

	if username == "" && fileErr != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "未提供用户名或头像"))
		return
	}

	var avatarURL string
	if fileErr == nil {
		filename := util.GenerateUniqueFilename(file.Filename)
		path := fmt.Sprintf("avatars/%s/%s", userID.Hex(), filename)

		var err error
		avatarURL, err = h.storage.UploadFile(file, path)
		if err != nil {
			util.Logger.Error("上传头像失败", zap.Error(err))
			errors.HandleError(c, errors.Wrap(errors.ErrUploadFailed, "上传头像失败", err))
			return
		}
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, username, avatarURL)
	if err != nil {
		util.Logger.Error("更新用户资料失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "资料更新成功")
}
