package model

// Follow is an edge from a follower to an author. The (user, author) pair
// is unique.
type Follow struct {
	UserId   string `db:"user_id" json:"userId"`
	AuthorId string `db:"author_id" json:"authorId"`
}
