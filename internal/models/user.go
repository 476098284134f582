package models

import "time"

// UserModel represents an editor/admin account.
type UserModel struct {
	Base
	Username      string     `json:"username"        gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Avatar        string     `json:"avatar"`
	Password      string     `json:"-"               gorm:"not null"`
	Mail          string     `json:"mail"`
	Bio           string     `json:"bio"             gorm:"type:text"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }
