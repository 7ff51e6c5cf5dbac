// Package mock provides an in-memory Database for route and app tests.
package mock

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"

	appDb "github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/util"
)

func dupKeyErr(entry string) error {
	return &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry '" + entry + "' for key",
	}
}

type DB struct {
	mutex sync.Mutex

	// Clock stamps created rows; swap it for deterministic ordering in tests.
	Clock func() time.Time

	users    map[string]*model.User
	groups   []*model.Group
	posts    []*model.Post
	comments []*model.Comment
	follows  map[string]map[string]bool

	nextPostId    int64
	nextCommentId int64
	nextGroupId   int64
}

func NewDB() *DB {
	return &DB{
		Clock:   time.Now,
		users:   make(map[string]*model.User),
		follows: make(map[string]map[string]bool),
	}
}

func (m *DB) GetSQLDB() *sql.DB { return nil }
func (m *DB) Close() error      { return nil }

func (m *DB) CreatePost(_ context.Context, req *appDb.CreatePost) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.nextPostId++
	var group *model.Group
	if req.GroupId != nil {
		group = m.groupById(*req.GroupId)
	}
	m.posts = append(m.posts, &model.Post{
		Id:            m.nextPostId,
		Author:        m.users[req.AuthorId],
		Content:       req.Content,
		Group:         group,
		ImageBlobName: req.ImageBlobName,
		CreatedAt:     m.Clock(),
	})
	return m.nextPostId, nil
}

func (m *DB) UpdatePost(_ context.Context, id int64, req *appDb.UpdatePost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, post := range m.posts {
		if post.Id != id {
			continue
		}
		post.Content = req.Content
		post.Group = nil
		if req.GroupId != nil {
			post.Group = m.groupById(*req.GroupId)
		}
		if req.ImageBlobName != "" {
			post.ImageBlobName = req.ImageBlobName
		}
		return nil
	}
	return nil
}

func (m *DB) GetPostById(_ context.Context, id int64) (*model.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, post := range m.posts {
		if post.Id == id {
			return post, nil
		}
	}
	return nil, nil
}

func (m *DB) GetPosts(_ context.Context, query *appDb.PostsListQuery) ([]*model.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	matched := m.matchPosts(query)
	if query.Limit > 0 {
		if query.Offset >= len(matched) {
			return []*model.Post{}, nil
		}
		matched = matched[query.Offset:]
		if len(matched) > query.Limit {
			matched = matched[:query.Limit]
		}
	}
	return matched, nil
}

func (m *DB) CountPosts(_ context.Context, query *appDb.PostsListQuery) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.matchPosts(query)), nil
}

func (m *DB) matchPosts(query *appDb.PostsListQuery) []*model.Post {
	matched := make([]*model.Post, 0, len(m.posts))
	for _, post := range m.posts {
		switch {
		case query.GroupId != nil:
			if post.Group == nil || post.Group.Id != *query.GroupId {
				continue
			}
		case query.AuthorId != "":
			if post.Author.Id != query.AuthorId {
				continue
			}
		case query.FollowedBy != "":
			if !m.follows[query.FollowedBy][post.Author.Id] {
				continue
			}
		}
		matched = append(matched, post)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Id > matched[j].Id
	})
	return matched
}

func (m *DB) CreateComment(_ context.Context, req *appDb.CreateComment) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.nextCommentId++
	m.comments = append(m.comments, &model.Comment{
		Id:        m.nextCommentId,
		PostId:    req.PostId,
		Author:    m.users[req.AuthorId],
		Content:   req.Content,
		CreatedAt: m.Clock(),
	})
	return m.nextCommentId, nil
}

func (m *DB) GetCommentsForPost(_ context.Context, postId int64) ([]*model.Comment, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	comments := make([]*model.Comment, 0)
	for _, comment := range m.comments {
		if comment.PostId == postId {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (m *DB) CreateGroup(_ context.Context, req *appDb.CreateGroup) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, group := range m.groups {
		if group.Slug == req.Slug {
			return 0, dupKeyErr(req.Slug)
		}
	}
	m.nextGroupId++
	m.groups = append(m.groups, &model.Group{
		Id:          m.nextGroupId,
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	return m.nextGroupId, nil
}

func (m *DB) GetGroupBySlug(_ context.Context, slug string) (*model.Group, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, group := range m.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, nil
}

func (m *DB) GetGroups(_ context.Context) ([]*model.Group, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	groups := append([]*model.Group(nil), m.groups...)
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})
	return groups, nil
}

func (m *DB) groupById(id int64) *model.Group {
	for _, group := range m.groups {
		if group.Id == id {
			return group
		}
	}
	return nil
}

func (m *DB) CreateUser(_ context.Context, user *model.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.users[user.Id]; ok {
		return dupKeyErr(user.Id)
	}
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return dupKeyErr(user.Username)
		}
	}
	m.users[user.Id] = &model.User{
		Id:       user.Id,
		Username: user.Username,
		Avatar:   util.Avatar(user.Username),
	}
	return nil
}

func (m *DB) GetUser(_ context.Context, id string) (*model.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.users[id], nil
}

func (m *DB) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (m *DB) CreateFollow(_ context.Context, follow *model.Follow) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.follows[follow.UserId][follow.AuthorId] {
		return dupKeyErr(follow.UserId + "-" + follow.AuthorId)
	}
	if m.follows[follow.UserId] == nil {
		m.follows[follow.UserId] = make(map[string]bool)
	}
	m.follows[follow.UserId][follow.AuthorId] = true
	return nil
}

func (m *DB) DeleteFollow(_ context.Context, follow *model.Follow) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if !m.follows[follow.UserId][follow.AuthorId] {
		return false, nil
	}
	delete(m.follows[follow.UserId], follow.AuthorId)
	return true, nil
}

func (m *DB) IsFollowing(_ context.Context, userId, authorId string) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.follows[userId][authorId], nil
}

// FollowCount reports how many authors the user follows.
func (m *DB) FollowCount(userId string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.follows[userId])
}
