package app

import (
	"context"

	appDb "github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/model"
)

// FeedForUser pages through the posts of every author the user follows. The
// user's own posts only appear if they follow themselves, which creating a
// follow never allows.
func FeedForUser(ctx context.Context, database appDb.Database, user *model.User,
	rawPage string) (*PostPage, error) {
	return PaginatePosts(ctx, database, &appDb.PostsListQuery{
		FollowedBy: user.Id,
	}, rawPage)
}
