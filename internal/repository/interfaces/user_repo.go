package interfaces

import (
	"context"

	"blog-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository 接口定义了用户集合应该实现的方法。
// 未命中的查询返回 (nil, nil) 而不是错误。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByIdentifier 按用户名或邮箱查找（登录用的逻辑或查询）
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	// UpdateProfile 以 $set 原子更新用户名和头像
	UpdateProfile(ctx context.Context, id primitive.ObjectID, username, imgURL string) error
	AddPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error
	AddFavorite(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, postID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
