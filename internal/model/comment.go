package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 结构体表示评论文档，作者信息同样以快照形式冗余存储
type Comment struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Comment      string             `json:"comment" bson:"comment"`
	Username     string             `json:"username" bson:"username"`
	AuthorAvatar string             `json:"authorAvatar" bson:"authorAvatar"`
	Author       primitive.ObjectID `json:"author" bson:"author"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
