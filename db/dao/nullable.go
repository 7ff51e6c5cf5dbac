package dao

import "database/sql"

// NullInt64 scans a nullable BIGINT column, e.g. post.group_id.
type NullInt64 struct {
	sql.NullInt64
}

// AsPtr returns nil for a NULL column
func (ni *NullInt64) AsPtr() *int64 {
	if !ni.NullInt64.Valid {
		return nil
	}
	return &ni.NullInt64.Int64
}
