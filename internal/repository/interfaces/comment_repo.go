package interfaces

import (
	"context"

	"blog-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentRepository 定义了评论集合的数据库操作接口
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	// FindByIDs 按给定ID顺序返回评论，缺失的ID被跳过
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Comment, error)
	FindAll(ctx context.Context) ([]*model.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error
	UpdateAuthorSnapshot(ctx context.Context, authorID primitive.ObjectID, username, avatar string) error
	Count(ctx context.Context) (int64, error)
}
