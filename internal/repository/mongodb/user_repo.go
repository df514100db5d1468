package mongodb

import (
	"context"
	"time"

	"blog-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository 是 interfaces.UserRepository 的 MongoDB 实现
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository 创建一个新的 UserRepository 实例
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	if user.Favorites == nil {
		user.Favorites = []primitive.ObjectID{}
	}

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, imgURL string) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"username":  username,
		"imgUrl":    imgURL,
		"updatedAt": time.Now(),
	}})
	return err
}

func (r *UserRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"posts": postID}})
	return err
}

func (r *UserRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
	return err
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$addToSet": bson.M{"favorites": postID}})
	return err
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"favorites": postID}})
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
