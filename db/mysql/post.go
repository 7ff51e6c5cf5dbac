package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/upper/db/v4"
	appDb "github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/db/dao"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/util"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("author_id", "content", "group_id", "image_blob_name").
		Values(req.AuthorId, req.Content, req.GroupId, emptyAsNull(req.ImageBlobName)).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	updater := pdb.sess.SQL().
		Update("post").
		Set("content", req.Content, "group_id", req.GroupId)
	if req.ImageBlobName != "" {
		updater = updater.Set("image_blob_name", req.ImageBlobName)
	}
	_, err := updater.
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

type flattenedPost struct {
	Id               int64          `db:"id"`
	Content          string         `db:"content"`
	ImageBlobName    sql.NullString `db:"image_blob_name"`
	AuthorId         string         `db:"author_id"`
	AuthorUsername   string         `db:"author_username"`
	GroupId          dao.NullInt64  `db:"group_id"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupDescription sql.NullString `db:"group_description"`
	CreatedAt        time.Time      `db:"created_at"`
}

var postColumns = []interface{}{
	"p.id",
	"p.content",
	"p.image_blob_name",
	"p.created_at",
	"person.firebase_id AS author_id",
	"person.username AS author_username",
	"g.id AS group_id",
	"g.title AS group_title",
	"g.slug AS group_slug",
	"g.description AS group_description",
}

// postsSelector builds the shared FROM/JOIN/WHERE part of every post listing.
func (pdb *PostDB) postsSelector(columns []interface{}, query *appDb.PostsListQuery) db.Selector {
	sel := pdb.sess.SQL().
		Select(columns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("post_group AS g").On("p.group_id = g.id")
	switch {
	case query.GroupId != nil:
		sel = sel.Where("p.group_id = ?", *query.GroupId)
	case query.AuthorId != "":
		sel = sel.Where("p.author_id = ?", query.AuthorId)
	case query.FollowedBy != "":
		sel = sel.Where("p.author_id IN (SELECT f.author_id FROM follow AS f WHERE f.user_id = ?)",
			query.FollowedBy)
	}
	return sel
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *appDb.PostsListQuery) ([]*model.Post, error) {
	sel := pdb.postsSelector(postColumns, query).
		// created_at ties are broken by id so pages slice deterministically
		OrderBy("p.created_at DESC", "p.id DESC")
	if query.Limit > 0 {
		sel = sel.Limit(query.Limit).Offset(query.Offset)
	}

	var flattenedPosts []flattenedPost
	if err := sel.
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattenedPosts[i])
	}
	return posts, nil
}

func (pdb *PostDB) CountPosts(ctx context.Context, query *appDb.PostsListQuery) (int, error) {
	var counter struct {
		Total int `db:"total"`
	}
	if err := pdb.postsSelector([]interface{}{db.Raw("COUNT(*) AS total")}, query).
		IteratorContext(ctx).
		One(&counter); err != nil {
		return 0, err
	}
	return counter.Total, nil
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("post_group AS g").On("p.group_id = g.id").
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	var group *model.Group
	if post.GroupId.Valid {
		group = &model.Group{
			Id:          post.GroupId.Int64,
			Title:       post.GroupTitle.String,
			Slug:        post.GroupSlug.String,
			Description: post.GroupDescription.String,
		}
	}
	return &model.Post{
		Id: post.Id,
		Author: &model.User{
			Id:       post.AuthorId,
			Username: post.AuthorUsername,
			Avatar:   util.Avatar(post.AuthorUsername),
		},
		Content:       post.Content,
		Group:         group,
		ImageBlobName: post.ImageBlobName.String,
		CreatedAt:     post.CreatedAt,
	}
}

func emptyAsNull(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}
