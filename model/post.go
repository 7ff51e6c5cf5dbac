package model

import "time"

type Post struct {
	Id            int64     `json:"id"`
	Author        *User     `json:"author"`
	Content       string    `json:"content"`
	Group         *Group    `json:"group,omitempty"`
	ImageBlobName string    `json:"imageBlobName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
