package service

import (
	"context"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SystemStats 后台仪表盘的系统统计
type SystemStats struct {
	UserCount    int64 `json:"userCount"`
	PostCount    int64 `json:"postCount"`
	CommentCount int64 `json:"commentCount"`
}

// AdminService 处理后台仪表盘的批量查询和删除。
// 删除用户不级联清理其帖子：帖子保留原作者引用（见数据模型约定）。
type AdminService struct {
	userRepo    interfaces.UserRepository
	postRepo    interfaces.PostRepository
	commentRepo interfaces.CommentRepository
}

// NewAdminService 创建一个新的 AdminService 实例
func NewAdminService(
	userRepo interfaces.UserRepository,
	postRepo interfaces.PostRepository,
	commentRepo interfaces.CommentRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户列表失败", err)
	}
	return users, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return errors.New(errors.ErrUserNotFound, "该用户不存在")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除用户失败", err)
	}
	return nil
}

func (s *AdminService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子列表失败", err)
	}
	return posts, nil
}

// DeletePost 后台删除帖子，与普通删除保持一致的清理策略：
// 摘除作者帖子列表中的引用并级联删除其评论
func (s *AdminService) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return errors.New(errors.ErrPostNotFound, "该帖子不存在")
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}

	if err := s.userRepo.RemovePost(ctx, post.Author, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新作者帖子列表失败", err)
	}

	if err := s.commentRepo.DeleteByIDs(ctx, post.Comments); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子评论失败", err)
	}
	return nil
}

func (s *AdminService) ListComments(ctx context.Context) ([]*model.Comment, error) {
	comments, err := s.commentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论列表失败", err)
	}
	return comments, nil
}

func (s *AdminService) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
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

// AdminServiceInterface 供处理器依赖，测试中用 mock 替代
type AdminServiceInterface interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	ListPosts(ctx context.Context) ([]*model.Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	ListComments(ctx context.Context) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	GetSystemStats(ctx context.Context) (*SystemStats, error)
}

// 确保 AdminService 实现了 AdminServiceInterface
var _ AdminServiceInterface = (*AdminService)(nil)

func (s *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计用户数失败", err)
	}
	postCount, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计帖子数失败", err)
	}
	commentCount, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计评论数失败", err)
	}

	return &SystemStats{
		UserCount:    userCount,
		PostCount:    postCount,
		CommentCount: commentCount,
	}, nil
}
