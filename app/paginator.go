package app

import (
	"context"
	"strconv"

	appDb "github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/model"
)

// PageSize is the number of posts on every listing page.
const PageSize = 10

type PostPage struct {
	Posts       []*model.Post `json:"posts"`
	Number      int           `json:"number"`
	TotalPages  int           `json:"totalPages"`
	Count       int           `json:"count"`
	HasNext     bool          `json:"hasNext"`
	HasPrevious bool          `json:"hasPrevious"`
}

// PaginatePosts fetches one page of the posts matched by query. rawPage comes
// straight from the request: anything that is not a number, or below 1, maps
// to the first page; anything past the end maps to the last page.
func PaginatePosts(ctx context.Context, database appDb.Database, query *appDb.PostsListQuery,
	rawPage string) (*PostPage, error) {
	count, err := database.CountPosts(ctx, query)
	if err != nil {
		return nil, err
	}

	totalPages := (count + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	number := parsePageNumber(rawPage, totalPages)

	pageQuery := *query
	pageQuery.Limit = PageSize
	pageQuery.Offset = (number - 1) * PageSize
	posts, err := database.GetPosts(ctx, &pageQuery)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		// DON'T return a nil slice
		posts = []*model.Post{}
	}

	return &PostPage{
		Posts:       posts,
		Number:      number,
		TotalPages:  totalPages,
		Count:       count,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}, nil
}

func parsePageNumber(raw string, totalPages int) int {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 1
	}
	if number > totalPages {
		return totalPages
	}
	return number
}
