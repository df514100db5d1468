package post

import (
	"fmt"
	"strconv"
	"strings"

	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/service"
	"blog-backend/internal/storage"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PostHandler 处理帖子相关请求
type PostHandler struct {
	postService service.PostServiceInterface
	storage     storage.Storage
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService service.PostServiceInterface, storage storage.Storage) *PostHandler {
	return &PostHandler{postService, storage}
}

// parseTags 把逗号分隔的标签串拆成去空白后的切片。
// 表单未提供该字段时返回 nil，与空标签列表区分。
func parseTags(c *gin.Context) []string {
	raw, ok := c.GetPostForm("tags")
	if !ok {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// uploadMedia 上传帖子媒体文件并识别类型。未提供文件时返回空值。
func (h *PostHandler) uploadMedia(c *gin.Context, userID primitive.ObjectID) (string, string, error) {
	file, err := c.FormFile("media")
	if err != nil {
		return "", "", nil
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("posts/%s/%s", userID.Hex(), filename)

	url, err := h.storage.UploadFile(file, path)
	if err != nil {
		return "", "", errors.Wrap(errors.ErrUploadFailed, "上传媒体文件失败", err)
	}
	return url, util.DetectMediaType(file), nil
}

// CreatePost 发布帖子（multipart 表单：title、text、tags、media）
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	title := c.PostForm("title")
	text := c.PostForm("text")
	if title == "" || text == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "标题和内容不能为空"))
		return
	}

	imgURL, mediaType, err := h.uploadMedia(c, userID)
	if err != nil {
		util.Logger.Error("上传帖子媒体失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, title, text, parseTags(c), imgURL, mediaType)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "帖子发布成功")
}

// ListPosts 主列表：标题搜索 + 分页 + 热门榜 + 总数
func (h *PostHandler) ListPosts(c *gin.Context) {
	searchQuery := c.Query("searchQuery")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	list, err := h.postService.ListPosts(c.Request.Context(), searchQuery, page)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, list, "")
}

// ListAllPosts 不分页返回全部帖子
func (h *PostHandler) ListAllPosts(c *gin.Context) {
	posts, err := h.postService.ListAllPosts(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// ListPostsByTag 按标签过滤的列表
func (h *PostHandler) ListPostsByTag(c *gin.Context) {
	tag := c.Param("tag")
	searchQuery := c.Query("searchQuery")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	posts, total, err := h.postService.ListPostsByTag(c.Request.Context(), tag, searchQuery, page)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts":           posts,
		"totalPostsCount": total,
	}, "")
}

// GetPost 读取单个帖子，浏览量加一
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "")
}

// GetMyPosts 返回当前用户的全部帖子
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	posts, err := h.postService.GetMyPosts(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// GetPostComments 返回帖子的评论列表
func (h *PostHandler) GetPostComments(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	comments, err := h.postService.GetPostComments(c.Request.Context(), postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comments": comments,
	}, "")
}

// ToggleLike 翻转点赞状态
func (h *PostHandler) ToggleLike(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	count, isLiked, err := h.postService.ToggleLike(c.Request.Context(), postID, userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"likesCount": count,
		"isLiked":    isLiked,
	}, "点赞已更新")
}

// UpdatePost 编辑帖子（multipart 表单）。未提供新媒体时保留原有媒体
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	title := c.PostForm("title")
	text := c.PostForm("text")
	if title == "" || text == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "标题和内容不能为空"))
		return
	}

	imgURL, mediaType, err := h.uploadMedia(c, userID)
	if err != nil {
		util.Logger.Error("上传帖子媒体失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), id, title, text, parseTags(c), imgURL, mediaType)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "帖子更新成功")
}

// RemovePost 删除帖子并级联清理引用
func (h *PostHandler) RemovePost(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserIDKey).(primitive.ObjectID)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	if err := h.postService.RemovePost(c.Request.Context(), id, userID); err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "帖子删除成功")
}
