package mysql

import (
	"context"

	"github.com/upper/db/v4"
	"github.com/yatube/yatube-be/model"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

// CreateFollow inserts the follow edge; the unique (user_id, author_id) key
// turns a double follow into a duplicate key error the caller can swallow.
func (fdb *FollowDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	_, err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Insert(follow)
	return err
}

func (fdb *FollowDB) DeleteFollow(ctx context.Context, follow *model.Follow) (bool, error) {
	res, err := fdb.sess.SQL().
		DeleteFrom("follow").
		Where("user_id = ? AND author_id = ?", follow.UserId, follow.AuthorId).
		ExecContext(ctx)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (fdb *FollowDB) IsFollowing(ctx context.Context, userId, authorId string) (bool, error) {
	count, err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("user_id = ? AND author_id = ?", userId, authorId).
		Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
