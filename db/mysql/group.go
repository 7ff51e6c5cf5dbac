package mysql

import (
	"context"

	"github.com/upper/db/v4"
	appDb "github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/model"
)

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, req *appDb.CreateGroup) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("post_group").
		Columns("title", "slug", "description").
		Values(req.Title, req.Slug, req.Description).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.SQL().
		Select("id", "title", "slug", "description").
		From("post_group").
		Where("slug = ?", slug).
		IteratorContext(ctx).
		One(&group); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (gdb *GroupDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	return groups, gdb.sess.SQL().
		Select("id", "title", "slug", "description").
		From("post_group").
		OrderBy("title").
		IteratorContext(ctx).
		All(&groups)
}
