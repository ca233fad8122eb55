package user

import "time"

// Fixed role identifiers, kept in sync with the seed migration.
const (
	RoleIDUser  int64 = 1
	RoleIDGuest int64 = 2
	RoleIDAdmin int64 = 99
)

type User struct {
	ID           int64      `gorm:"primaryKey"`
	Username     string     `gorm:"column:username;size:50;uniqueIndex;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FullName     string     `gorm:"column:full_name"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	RoleID       int64      `gorm:"column:role_id;not null;default:2"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    *time.Time `gorm:"column:updated_at"`
}

type Role struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;size:50;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	RoleID      int64     `gorm:"column:role_id;not null;index"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
