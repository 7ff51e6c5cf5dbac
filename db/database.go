package db

import (
	"context"
	"database/sql"

	"github.com/yatube/yatube-be/model"
)

type Database interface {
	PostDatabase
	GroupDatabase
	UserDatabase
	FollowDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreatePost struct {
	AuthorId      string
	Content       string
	GroupId       *int64
	ImageBlobName string
}

type UpdatePost struct {
	Content string
	GroupId *int64
	// ImageBlobName replaces the stored blob when non-empty; an empty value
	// leaves the existing image untouched.
	ImageBlobName string
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	Content  string
}

type CreateGroup struct {
	Title       string
	Slug        string
	Description string
}

// PostsListQuery selects a slice of the reverse-chronological post listing.
// At most one of GroupId, AuthorId and FollowedBy is set per call.
type PostsListQuery struct {
	GroupId    *int64
	AuthorId   string
	FollowedBy string // posts by authors this user follows
	Limit      int
	Offset     int
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsListQuery) ([]*model.Post, error)
	CountPosts(ctx context.Context, query *PostsListQuery) (int, error)
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type GroupDatabase interface {
	CreateGroup(ctx context.Context, req *CreateGroup) (groupId int64, err error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
}

type UserDatabase interface {
	CreateUser(context.Context, *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type FollowDatabase interface {
	CreateFollow(ctx context.Context, follow *model.Follow) error
	// DeleteFollow reports whether a matching follow edge existed.
	DeleteFollow(ctx context.Context, follow *model.Follow) (bool, error)
	IsFollowing(ctx context.Context, userId, authorId string) (bool, error)
}
