package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 结构体表示用户文档
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username"`
	Email        string               `json:"email" bson:"email"`
	PasswordHash string               `json:"-" bson:"password"` // 密码哈希不应在JSON中暴露
	ImgURL       string               `json:"imgUrl" bson:"imgUrl"`
	Role         string               `json:"role" bson:"role"`
	Posts        []primitive.ObjectID `json:"posts" bson:"posts"`
	Favorites    []primitive.ObjectID `json:"favorites" bson:"favorites"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsFavorite 判断帖子是否已在收藏列表中
func (u *User) IsFavorite(postID primitive.ObjectID) bool {
	for _, id := range u.Favorites {
		if id == postID {
			return true
		}
	}
	return false
}
