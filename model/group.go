package model

// Group is a topical collection of posts. Groups are never deleted by the
// application itself; a post keeps living when its group goes away.
type Group struct {
	Id          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}
