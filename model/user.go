package model

// User holds the local profile data for a firebase account
type User struct {
	Id       string `db:"firebase_id" json:"id"`
	Username string `db:"username" json:"username"`
	Avatar   string `db:"-" json:"avatar,omitempty"`
}
