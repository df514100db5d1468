package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 媒体类型，由上传文件的 Content-Type 推断
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post 结构体表示帖子文档。username 和 authorAvatar 是作者信息的
// 冗余快照，由资料更新时的批量回写保持一致。
type Post struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username"`
	AuthorAvatar string               `json:"authorAvatar" bson:"authorAvatar"`
	Title        string               `json:"title" bson:"title"`
	Text         string               `json:"text" bson:"text"`
	ImgURL       string               `json:"imgUrl" bson:"imgUrl"`
	MediaType    string               `json:"mediaType" bson:"mediaType"`
	Views        int64                `json:"views" bson:"views"`
	Author       primitive.ObjectID   `json:"author" bson:"author"`
	Comments     []primitive.ObjectID `json:"comments" bson:"comments"`
	Likes        []primitive.ObjectID `json:"likes" bson:"likes"`
	Tags         []string             `json:"tags" bson:"tags"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// IsLikedBy 判断用户是否已点赞
func (p *Post) IsLikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
