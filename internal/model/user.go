package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID
	Username       string
	Password       string
	IsSuperuser    bool
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	Id          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	IsSuperuser bool      `json:"isSuperuser"`
}
