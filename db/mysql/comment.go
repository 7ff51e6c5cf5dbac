package mysql

import (
	"context"
	"time"

	appDb "github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/util"
)

func (pdb *PostDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "content").
		Values(req.PostId, req.AuthorId, req.Content).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedComment struct {
	Id             int64     `db:"id"`
	PostId         int64     `db:"post_id"`
	Content        string    `db:"content"`
	AuthorId       string    `db:"author_id"`
	AuthorUsername string    `db:"author_username"`
	CreatedAt      time.Time `db:"created_at"`
}

// GetCommentsForPost returns the post's comments oldest first, each with its
// author eagerly joined.
func (pdb *PostDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := pdb.sess.SQL().
		Select(
			"c.id",
			"c.post_id",
			"c.content",
			"c.created_at",
			"person.firebase_id AS author_id",
			"person.username AS author_username").
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created_at", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	comments := make([]*model.Comment, len(flattenedComments))
	for i, flattened := range flattenedComments {
		comments[i] = &model.Comment{
			Id:     flattened.Id,
			PostId: flattened.PostId,
			Author: &model.User{
				Id:       flattened.AuthorId,
				Username: flattened.AuthorUsername,
				Avatar:   util.Avatar(flattened.AuthorUsername),
			},
			Content:   flattened.Content,
			CreatedAt: flattened.CreatedAt,
		}
	}
	return comments, nil
}
