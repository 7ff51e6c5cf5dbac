package model

import "time"

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"-"`
	Author    *User     `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
