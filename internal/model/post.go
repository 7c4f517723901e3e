package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID          int64              `json:"id"`
	Description string             `json:"description"`
	Images      []string           `json:"images"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}
