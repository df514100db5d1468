package service

import (
	"context"
	"testing"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(userRepo *MockUserRepository, postRepo *MockPostRepository, commentRepo *MockCommentRepository) *UserService {
	return NewUserService(userRepo, postRepo, commentRepo, nil)
}

// TestRegister 测试用户注册功能
func TestRegister(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	service := newUserService(mockUserRepo, mockPostRepo, mockCommentRepo)

	user := &model.User{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "password123",
	}

	// 测试成功注册
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(nil, nil)
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, nil)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	err := service.Register(context.Background(), user)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	// 密码应当被哈希，不再是明文
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	mockUserRepo.AssertExpectations(t)

	// 测试用户名已存在
	mockUserRepo.On("FindByUsername", mock.Anything, "existinguser").Return(&model.User{}, nil)
	user.Username = "existinguser"
	err = service.Register(context.Background(), user)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserExists, errors.Code(err))

	// 测试邮箱已存在
	mockUserRepo.On("FindByUsername", mock.Anything, "newuser").Return(nil, nil)
	mockUserRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{}, nil)
	user.Username = "newuser"
	user.Email = "taken@example.com"
	err = service.Register(context.Background(), user)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserExists, errors.Code(err))
}

// TestLogin 测试登录：用户名或邮箱 + 密码
func TestLogin(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	service := newUserService(mockUserRepo, mockPostRepo, mockCommentRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &model.User{
		ID:           primitive.NewObjectID(),
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: string(hash),
	}

	mockUserRepo.On("FindByIdentifier", mock.Anything, "testuser").Return(user, nil)
	mockUserRepo.On("FindByIdentifier", mock.Anything, "nobody").Return(nil, nil)

	// 正确密码
	got, err := service.Login(context.Background(), "testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// 错误密码
	_, err = service.Login(context.Background(), "testuser", "wrongpassword")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrInvalidCredentials, errors.Code(err))

	// 用户不存在
	_, err = service.Login(context.Background(), "nobody", "password123")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserNotFound, errors.Code(err))
}

// TestUpdateProfile 测试资料更新及向帖子和评论的快照回写
func TestUpdateProfile(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	service := newUserService(mockUserRepo, mockPostRepo, mockCommentRepo)

	userID := primitive.NewObjectID()
	user := &model.User{
		ID:       userID,
		Username: "olduser",
		ImgURL:   "http://example.com/old.png",
	}

	mockUserRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	mockUserRepo.On("FindByUsername", mock.Anything, "newuser").Return(nil, nil)
	mockUserRepo.On("UpdateProfile", mock.Anything, userID, "newuser", "http://example.com/new.png").Return(nil)
	mockPostRepo.On("UpdateAuthorSnapshot", mock.Anything, userID, "newuser", "http://example.com/new.png").Return(nil)
	mockCommentRepo.On("UpdateAuthorSnapshot", mock.Anything, userID, "newuser", "http://example.com/new.png").Return(nil)

	updated, err := service.UpdateProfile(context.Background(), userID, "newuser", "http://example.com/new.png")
	assert.NoError(t, err)
	assert.Equal(t, "newuser", updated.Username)
	assert.Equal(t, "http://example.com/new.png", updated.ImgURL)
	mockUserRepo.AssertExpectations(t)
	mockPostRepo.AssertExpectations(t)
	mockCommentRepo.AssertExpectations(t)
}

// TestUpdateProfileUsernameConflict 用户名冲突时整体失败，头像也不应用
func TestUpdateProfileUsernameConflict(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	service := newUserService(mockUserRepo, mockPostRepo, mockCommentRepo)

	userID := primitive.NewObjectID()
	user := &model.User{ID: userID, Username: "olduser"}

	mockUserRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	mockUserRepo.On("FindByUsername", mock.Anything, "taken").Return(&model.User{}, nil)

	_, err := service.UpdateProfile(context.Background(), userID, "taken", "http://example.com/new.png")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserExists, errors.Code(err))
	mockUserRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockPostRepo.AssertNotCalled(t, "UpdateAuthorSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestToggleFavorite 两次翻转应当回到初始状态
func TestToggleFavorite(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	service := newUserService(mockUserRepo, mockPostRepo, mockCommentRepo)

	userID := primitive.NewObjectID()
	postID := primitive.NewObjectID()
	post := &model.Post{ID: postID}

	mockPostRepo.On("FindByID", mock.Anything, postID).Return(post, nil)

	// 第一次：未收藏 → 收藏
	mockUserRepo.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID}, nil).Once()
	mockUserRepo.On("AddFavorite", mock.Anything, userID, postID).Return(nil).Once()
	mockUserRepo.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID, Favorites: []primitive.ObjectID{postID}}, nil).Once()

	favorites, err := service.ToggleFavorite(context.Background(), userID, postID)
	assert.NoError(t, err)
	assert.Contains(t, favorites, postID)

	// 第二次：已收藏 → 取消
	mockUserRepo.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID, Favorites: []primitive.ObjectID{postID}}, nil).Once()
	mockUserRepo.On("RemoveFavorite", mock.Anything, userID, postID).Return(nil).Once()
	mockUserRepo.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID}, nil).Once()

	favorites, err = service.ToggleFavorite(context.Background(), userID, postID)
	assert.NoError(t, err)
	assert.NotContains(t, favorites, postID)
	mockUserRepo.AssertExpectations(t)
}

// TestToggleFavoriteMissingPost 收藏不存在的帖子应当失败
func TestToggleFavoriteMissingPost(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	service := newUserService(mockUserRepo, mockPostRepo, mockCommentRepo)

	userID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	mockUserRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	mockPostRepo.On("FindByID", mock.Anything, postID).Return(nil, nil)

	_, err := service.ToggleFavorite(context.Background(), userID, postID)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrPostNotFound, errors.Code(err))
	mockUserRepo.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything, mock.Anything)
}

// TestListFavorites 只返回带媒体的收藏帖子
func TestListFavorites(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockPostRepo := new(MockPostRepository)
	mockCommentRepo := new(MockCommentRepository)
	service := newUserService(mockUserRepo, mockPostRepo, mockCommentRepo)

	userID := primitive.NewObjectID()
	withMedia := &model.Post{ID: primitive.NewObjectID(), ImgURL: "http://example.com/a.png"}
	withoutMedia := &model.Post{ID: primitive.NewObjectID()}
	favoriteIDs := []primitive.ObjectID{withMedia.ID, withoutMedia.ID}

	mockUserRepo.On("FindByID", mock.Anything, userID).
		Return(&model.User{ID: userID, Favorites: favoriteIDs}, nil)
	mockPostRepo.On("FindByIDs", mock.Anything, favoriteIDs).
		Return([]*model.Post{withMedia, withoutMedia}, nil)

	posts, err := service.ListFavorites(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, withMedia.ID, posts[0].ID)
}
