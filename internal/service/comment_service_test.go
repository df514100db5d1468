package service

import (
	"context"
	"testing"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	util.InitLogger("error")
}

// TestCreateComment 评论带作者快照落库并挂到帖子的评论列表
func TestCreateComment(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewCommentService(mockCommentRepo, mockPostRepo, mockUserRepo)

	authorID := primitive.NewObjectID()
	postID := primitive.NewObjectID()
	author := &model.User{
		ID:       authorID,
		Username: "author",
		ImgURL:   "http://example.com/avatar.png",
	}

	mockUserRepo.On("FindByID", mock.Anything, authorID).Return(author, nil)
	mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Comment).ID = primitive.NewObjectID()
		}).Return(nil)
	mockPostRepo.On("AddComment", mock.Anything, postID, mock.AnythingOfType("primitive.ObjectID")).Return(nil)

	comment, err := service.CreateComment(context.Background(), authorID, postID, "不错的文章")
	assert.NoError(t, err)
	assert.Equal(t, "author", comment.Username)
	assert.Equal(t, "http://example.com/avatar.png", comment.AuthorAvatar)
	assert.Equal(t, authorID, comment.Author)
	mockCommentRepo.AssertExpectations(t)
	mockPostRepo.AssertExpectations(t)
}

// TestCreateCommentEmptyText 空评论直接拒绝
func TestCreateCommentEmptyText(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewCommentService(mockCommentRepo, mockPostRepo, mockUserRepo)

	_, err := service.CreateComment(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.Code(err))
	mockCommentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestCreateCommentOrphan 挂接失败时评论保留，调用仍然成功
func TestCreateCommentOrphan(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewCommentService(mockCommentRepo, mockPostRepo, mockUserRepo)

	authorID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	mockUserRepo.On("FindByID", mock.Anything, authorID).
		Return(&model.User{ID: authorID, Username: "author"}, nil)
	mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
	mockPostRepo.On("AddComment", mock.Anything, postID, mock.AnythingOfType("primitive.ObjectID")).
		Return(mongo.ErrNoDocuments)

	comment, err := service.CreateComment(context.Background(), authorID, postID, "评论")
	assert.NoError(t, err)
	assert.NotNil(t, comment)
}

// TestRemoveComment 删除评论并从帖子的评论列表中摘除引用
func TestRemoveComment(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewCommentService(mockCommentRepo, mockPostRepo, mockUserRepo)

	commentID := primitive.NewObjectID()

	mockCommentRepo.On("FindByID", mock.Anything, commentID).
		Return(&model.Comment{ID: commentID}, nil)
	mockCommentRepo.On("Delete", mock.Anything, commentID).Return(nil)
	mockPostRepo.On("RemoveCommentRefs", mock.Anything, commentID).Return(nil)

	err := service.RemoveComment(context.Background(), commentID)
	assert.NoError(t, err)
	mockCommentRepo.AssertExpectations(t)
	mockPostRepo.AssertExpectations(t)

	// 不存在的评论
	missing := primitive.NewObjectID()
	mockCommentRepo.On("FindByID", mock.Anything, missing).Return(nil, nil)
	err = service.RemoveComment(context.Background(), missing)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCommentNotFound, errors.Code(err))
}
