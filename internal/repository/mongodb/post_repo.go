package mongodb

import (
	"context"
	"regexp"
	"time"

	"blog-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository 是 interfaces.PostRepository 的 MongoDB 实现
type PostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository 创建一个新的 PostRepository 实例
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{collection: db.Collection(postsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Comments == nil {
		post.Comments = []primitive.ObjectID{}
	}
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	res, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByIDWithView 按ID读取帖子并原子递增浏览量，并发读取各自独立计数
func (r *PostRepository) FindByIDWithView(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post model.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byID := make(map[primitive.ObjectID]*model.Post, len(ids))
	for cursor.Next(ctx) {
		var post model.Post
		if err := cursor.Decode(&post); err != nil {
			return nil, err
		}
		byID[post.ID] = &post
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	// 保持调用方给定的引用顺序
	posts := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *PostRepository) Search(ctx context.Context, titleQuery, tag string, page, pageSize int) ([]*model.Post, int64, error) {
	filter := bson.M{}
	if titleQuery != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(titleQuery), "$options": "i"}
	}
	if tag != "" {
		filter["tags"] = tag
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// FindPopular 按点赞数排序。点赞以ID数组存储，直接排序数组没有意义，
// 先投影出数组长度再排序，点赞数相同时按创建时间倒序。
func (r *PostRepository) FindPopular(ctx context.Context, limit int) ([]*model.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{"likesCount": bson.M{"$size": "$likes"}}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "likesCount", Value: -1},
			{Key: "createdAt", Value: -1},
		}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) FindAll(ctx context.Context) ([]*model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	_, err := r.collection.UpdateByID(ctx, post.ID, bson.M{"$set": bson.M{
		"title":     post.Title,
		"text":      post.Text,
		"tags":      post.Tags,
		"imgUrl":    post.ImgURL,
		"mediaType": post.MediaType,
		"updatedAt": time.Now(),
	}})
	return err
}

func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, postID, bson.M{"$addToSet": bson.M{"likes": userID}})
	return err
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, postID, bson.M{"$pull": bson.M{"likes": userID}})
	return err
}

func (r *PostRepository) AddComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	res, err := r.collection.UpdateByID(ctx, postID, bson.M{"$push": bson.M{"comments": commentID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PostRepository) RemoveCommentRefs(ctx context.Context, commentID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"comments": commentID},
		bson.M{"$pull": bson.M{"comments": commentID}},
	)
	return err
}

// UpdateAuthorSnapshot 把作者最新的用户名和头像批量回写到其全部帖子，
// 幂等，可安全重放
func (r *PostRepository) UpdateAuthorSnapshot(ctx context.Context, authorID primitive.ObjectID, username, avatar string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"author": authorID},
		bson.M{"$set": bson.M{
			"username":     username,
			"authorAvatar": avatar,
		}},
	)
	return err
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
