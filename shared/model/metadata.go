package model

import "time"

// Metadata holds the store-managed timestamps shared by persisted entities.
type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
