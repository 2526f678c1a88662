package models

import "time"

type Dataset struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	S3Path    string    `json:"s3_path"`
	CreatedAt time.Time `json:"created_at"`
}
