package service

import (
	"context"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
	"blog-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CommentService 处理与评论相关的业务逻辑
type CommentService struct {
	commentRepo interfaces.CommentRepository
	postRepo    interfaces.PostRepository
	userRepo    interfaces.UserRepository
}

// NewCommentService 创建一个新的 CommentService 实例
func NewCommentService(
	commentRepo interfaces.CommentRepository,
	postRepo interfaces.PostRepository,
	userRepo interfaces.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// CreateComment 发表评论。评论先落库，再把引用挂到帖子的评论列表；
// 挂接是尽力而为的：postId 无效时评论保留为孤儿而不是整体失败。
func (s *CommentService) CreateComment(ctx context.Context, authorID, postID primitive.ObjectID, text string) (*model.Comment, error) {
	if text == "" {
		return nil, errors.New(errors.ErrValidation, "评论不能为空")
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询作者失败", err)
	}
	if author == nil {
		return nil, errors.New(errors.ErrUserNotFound, "该用户不存在")
	}

	comment := &model.Comment{
		Comment:      text,
		Username:     author.Username,
		AuthorAvatar: author.ImgURL,
		Author:       authorID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建评论失败", err)
	}

	if err := s.postRepo.AddComment(ctx, postID, comment.ID); err != nil {
		util.Logger.Warn("评论挂接帖子失败，评论保留为孤儿",
			zap.Error(err),
			zap.String("comment_id", comment.ID.Hex()),
			zap.String("post_id", postID.Hex()))
	}

	return comment, nil
}

// ListComments 返回全部评论，最新的在前
func (s *CommentService) ListComments(ctx context.Context) ([]*model.Comment, error) {
	comments, err := s.commentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	return comments, nil
}

// RemoveComment 删除评论并从所有帖子的评论列表中摘除引用
func (s *CommentService) RemoveComment(ctx context.Context, id primitive.ObjectID) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	if comment == nil {
		return errors.New(errors.ErrCommentNotFound, "该评论不存在")
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除评论失败", err)
	}

	if err := s.postRepo.RemoveCommentRefs(ctx, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "摘除评论引用失败", err)
	}

	return nil
}

// CommentServiceInterface 供处理器依赖，测试中用 mock 替代
type CommentServiceInterface interface {
	CreateComment(ctx context.Context, authorID, postID primitive.ObjectID, text string) (*model.Comment, error)
	ListComments(ctx context.Context) ([]*model.Comment, error)
	RemoveComment(ctx context.Context, id primitive.ObjectID) error
}

// 确保 CommentService 实现了 CommentServiceInterface
var _ CommentServiceInterface = (*CommentService)(nil)
