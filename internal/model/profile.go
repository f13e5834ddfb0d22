package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds a user's optional photo, one row per user. Created lazily
// the first time the user touches it.
type Profile struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Bucket         *string
	ObjectKey      *string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type ProfileResponse struct {
	UserId         uuid.UUID `json:"userId"`
	Username       string    `json:"username"`
	Photo          *string   `json:"photo"`
	UpdateDatetime time.Time `json:"updateDatetime"`
}

type ProfilePhotoUpdateResponse struct {
	Photo   string `json:"photo"`
	Message string `json:"message"`
}
