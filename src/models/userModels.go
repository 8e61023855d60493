package models

import "time"

type UserModel struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"column:username;type:varchar(255);not null;uniqueIndex"`
	Password string `json:"-" gorm:"type:varchar(100);not null"`
}

// SessionModel records an issued login token so it can be revoked on logout.
type SessionModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    int       `json:"userId" gorm:"column:user_id;not null;index"`
	User      UserModel `json:"-" gorm:"foreignKey:UserID;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"column:expires_at;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
