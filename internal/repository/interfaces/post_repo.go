package interfaces

import (
	"context"

	"blog-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepository 定义了帖子集合的数据库操作接口。
// 点赞、浏览量等并发敏感的修改全部走原子更新算子。
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	// FindByIDWithView 原子递增浏览量并返回递增后的帖子
	FindByIDWithView(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Post, error)
	// Search 按标题子串（可选）和标签（可选）过滤，按创建时间倒序分页，
	// 同时返回过滤后的总数
	Search(ctx context.Context, titleQuery, tag string, page, pageSize int) ([]*model.Post, int64, error)
	// FindPopular 按点赞数倒序返回前 limit 条，点赞数相同按创建时间倒序
	FindPopular(ctx context.Context, limit int) ([]*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AddComment(ctx context.Context, postID, commentID primitive.ObjectID) error
	// RemoveCommentRefs 从所有帖子的评论列表中摘除该评论
	RemoveCommentRefs(ctx context.Context, commentID primitive.ObjectID) error
	// UpdateAuthorSnapshot 资料更新后的批量回写
	UpdateAuthorSnapshot(ctx context.Context, authorID primitive.ObjectID, username, avatar string) error
	Count(ctx context.Context) (int64, error)
}
