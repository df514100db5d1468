package service

import (
	"context"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
	"blog-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService 处理与用户相关的业务逻辑，包括资料更新后
// 向帖子和评论回写作者快照
type UserService struct {
	userRepo     interfaces.UserRepository
	postRepo     interfaces.PostRepository
	commentRepo  interfaces.CommentRepository
	emailService *EmailService
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(
	userRepo interfaces.UserRepository,
	postRepo interfaces.PostRepository,
	commentRepo interfaces.CommentRepository,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		emailService: emailService,
	}
}

// Register 注册新用户。用户名和邮箱分别做存在性检查，
// 并发下的竞态窗口由存储层唯一索引兜底。
func (s *UserService) Register(ctx context.Context, user *model.User) error {
	existing, err := s.userRepo.FindByUsername(ctx, user.Username)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "该用户名已被占用")
	}

	existing, err = s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "该邮箱已被占用")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}
	user.PasswordHash = string(hashedPassword)
	user.Role = model.RoleUser

	if err := s.userRepo.Create(ctx, user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	// 欢迎邮件异步发送，失败只记录日志
	if s.emailService != nil {
		s.emailService.SendWelcomeEmail(user.Email, user.Username)
	}

	return nil
}

// Login 按用户名或邮箱查找用户并校验密码
func (s *UserService) Login(ctx context.Context, identifier, password string) (*model.User, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "该用户不存在")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidCredentials, "用户名或密码不正确", err)
	}

	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "该用户不存在")
	}
	return user, nil
}

// UpdateProfile 更新用户名和/或头像。用户名冲突时整个调用失败，
// 头像也不会被应用。成功保存用户后再向帖子和评论批量回写快照：
// 先写用户、后扇出，两步都幂等，中途失败只会留下可重放的过期快照。
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, newUsername, newAvatarURL string) (*model.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if newUsername == "" && newAvatarURL == "" {
		return nil, errors.New(errors.ErrValidation, "未提供用户名或头像")
	}

	username := user.Username
	if newUsername != "" && newUsername != user.Username {
		existing, err := s.userRepo.FindByUsername(ctx, newUsername)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
		}
		if existing != nil {
			return nil, errors.New(errors.ErrUserExists, "该用户名已被占用")
		}
		username = newUsername
	}

	imgURL := user.ImgURL
	if newAvatarURL != "" {
		imgURL = newAvatarURL
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, username, imgURL); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新用户资料失败", err)
	}

	if err := s.postRepo.UpdateAuthorSnapshot(ctx, userID, username, imgURL); err != nil {
		util.Logger.Error("回写帖子作者快照失败",
			zap.Error(err),
			zap.String("user_id", userID.Hex()))
		return nil, errors.Wrap(errors.ErrDatabase, "同步帖子作者信息失败", err)
	}

	if err := s.commentRepo.UpdateAuthorSnapshot(ctx, userID, username, imgURL); err != nil {
		util.Logger.Error("回写评论作者快照失败",
			zap.Error(err),
			zap.String("user_id", userID.Hex()))
		return nil, errors.Wrap(errors.ErrDatabase, "同步评论作者信息失败", err)
	}

	user.Username = username
	user.ImgURL = imgURL
	return user, nil
}

// ToggleFavorite 翻转收藏状态并返回最新的收藏列表
func (s *UserService) ToggleFavorite(ctx context.Context, userID, postID primitive.ObjectID) ([]primitive.ObjectID, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "该帖子不存在")
	}

	if user.IsFavorite(postID) {
		err = s.userRepo.RemoveFavorite(ctx, userID, postID)
	} else {
		err = s.userRepo.AddFavorite(ctx, userID, postID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新收藏失败", err)
	}

	updated, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return updated.Favorites, nil
}

// ListFavorites 解析收藏引用，只返回带媒体的帖子
func (s *UserService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.FindByIDs(ctx, user.Favorites)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询收藏帖子失败", err)
	}

	withMedia := make([]*model.Post, 0, len(posts))
	for _, post := range posts {
		if post.ImgURL != "" {
			withMedia = append(withMedia, post)
		}
	}
	return withMedia, nil
}

// UserServiceInterface 供处理器和中间件依赖，测试中用 mock 替代
type UserServiceInterface interface {
	Register(ctx context.Context, user *model.User) error
	Login(ctx context.Context, identifier, password string) (*model.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, newUsername, newAvatarURL string) (*model.User, error)
	ToggleFavorite(ctx context.Context, userID, postID primitive.ObjectID) ([]primitive.ObjectID, error)
	ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error)
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)
