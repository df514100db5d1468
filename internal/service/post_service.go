package service

import (
	"context"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 主列表每页 7 条，标签列表每页 4 条，热门榜固定 5 条
const (
	postsPerPage    = 7
	tagPostsPerPage = 4
	popularLimit    = 5
)

// PostList 是主列表查询的结果：分页切片、热门榜和总数
type PostList struct {
	Posts           []*model.Post `json:"posts"`
	PopularPosts    []*model.Post `json:"popularPosts"`
	TotalPostsCount int64         `json:"totalPostsCount"`
}

// PostService 处理与帖子相关的业务逻辑
type PostService struct {
	postRepo    interfaces.PostRepository
	userRepo    interfaces.UserRepository
	commentRepo interfaces.CommentRepository
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(
	postRepo interfaces.PostRepository,
	userRepo interfaces.UserRepository,
	commentRepo interfaces.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost 发布帖子：以作者当前资料打快照，创建后把帖子ID
// 追加到作者的帖子列表
func (s *PostService) CreatePost(ctx context.Context, authorID primitive.ObjectID, title, text string, tags []string, imgURL, mediaType string) (*model.Post, error) {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询作者失败", err)
	}
	if author == nil {
		return nil, errors.New(errors.ErrUserNotFound, "该用户不存在")
	}

	post := &model.Post{
		Username:     author.Username,
		AuthorAvatar: author.ImgURL,
		Title:        title,
		Text:         text,
		ImgURL:       imgURL,
		MediaType:    mediaType,
		Author:       authorID,
		Tags:         tags,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}

	if err := s.userRepo.AddPost(ctx, authorID, post.ID); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新作者帖子列表失败", err)
	}

	return post, nil
}

// ListPosts 主列表：可选标题搜索 + 分页 + 热门榜 + 总数
func (s *PostService) ListPosts(ctx context.Context, searchQuery string, page int) (*PostList, error) {
	posts, total, err := s.postRepo.Search(ctx, searchQuery, "", page, postsPerPage)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}

	popular, err := s.postRepo.FindPopular(ctx, popularLimit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询热门帖子失败", err)
	}

	return &PostList{
		Posts:           posts,
		PopularPosts:    popular,
		TotalPostsCount: total,
	}, nil
}

// ListAllPosts 返回全部帖子，不分页，按创建时间倒序
func (s *PostService) ListAllPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	return posts, nil
}

// ListPostsByTag 按标签过滤的列表，分页尺寸与主列表不同
func (s *PostService) ListPostsByTag(ctx context.Context, tag, searchQuery string, page int) ([]*model.Post, int64, error) {
	posts, total, err := s.postRepo.Search(ctx, searchQuery, tag, page, tagPostsPerPage)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	return posts, total, nil
}

// GetPostByID 带副作用的读取：浏览量原子加一后返回
func (s *PostService) GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	post, err := s.postRepo.FindByIDWithView(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "该帖子不存在")
	}
	return post, nil
}

// GetMyPosts 按用户帖子列表的引用顺序返回其全部帖子
func (s *PostService) GetMyPosts(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "该用户不存在")
	}

	posts, err := s.postRepo.FindByIDs(ctx, user.Posts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	return posts, nil
}

// GetPostComments 按帖子评论列表的引用顺序返回评论
func (s *PostService) GetPostComments(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "该帖子不存在")
	}

	comments, err := s.commentRepo.FindByIDs(ctx, post.Comments)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	return comments, nil
}

// ToggleLike 翻转点赞状态，返回最新点赞数和翻转后的状态。
// 成员判断和写入之间的竞态由 $addToSet/$pull 的幂等性兜底。
func (s *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (int, bool, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return 0, false, errors.New(errors.ErrPostNotFound, "该帖子不存在")
	}

	liked := post.IsLikedBy(userID)
	if liked {
		err = s.postRepo.RemoveLike(ctx, postID, userID)
	} else {
		err = s.postRepo.AddLike(ctx, postID, userID)
	}
	if err != nil {
		return 0, false, errors.Wrap(errors.ErrDatabase, "更新点赞失败", err)
	}

	updated, err := s.postRepo.FindByID(ctx, postID)
	if err != nil || updated == nil {
		return 0, false, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	return len(updated.Likes), !liked, nil
}

// UpdatePost 编辑帖子。未提供新媒体时保留原有媒体引用，
// 提供时整体替换；标签仅在给出时替换。
func (s *PostService) UpdatePost(ctx context.Context, id primitive.ObjectID, title, text string, tags []string, imgURL, mediaType string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "该帖子不存在")
	}

	post.Title = title
	post.Text = text
	if tags != nil {
		post.Tags = tags
	}
	if imgURL != "" {
		post.ImgURL = imgURL
		post.MediaType = mediaType
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}
	return post, nil
}

// RemovePost 删除帖子：摘除请求者帖子列表中的引用，并级联删除
// 帖子评论列表里的评论，避免只能从全量评论列表里看到的孤儿评论
func (s *PostService) RemovePost(ctx context.Context, id, requestingUserID primitive.ObjectID) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return errors.New(errors.ErrPostNotFound, "该帖子不存在")
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}

	if err := s.userRepo.RemovePost(ctx, requestingUserID, id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新用户帖子列表失败", err)
	}

	if err := s.commentRepo.DeleteByIDs(ctx, post.Comments); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子评论失败", err)
	}

	return nil
}

// PostServiceInterface 供处理器依赖，测试中用 mock 替代
type PostServiceInterface interface {
	CreatePost(ctx context.Context, authorID primitive.ObjectID, title, text string, tags []string, imgURL, mediaType string) (*model.Post, error)
	ListPosts(ctx context.Context, searchQuery string, page int) (*PostList, error)
	ListAllPosts(ctx context.Context) ([]*model.Post, error)
	ListPostsByTag(ctx context.Context, tag, searchQuery string, page int) ([]*model.Post, int64, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	GetMyPosts(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error)
	GetPostComments(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error)
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (int, bool, error)
	UpdatePost(ctx context.Context, id primitive.ObjectID, title, text string, tags []string, imgURL, mediaType string) (*model.Post, error)
	RemovePost(ctx context.Context, id, requestingUserID primitive.ObjectID) error
}

// 确保 PostService 实现了 PostServiceInterface
var _ PostServiceInterface = (*PostService)(nil)
