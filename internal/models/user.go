package models

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCashier UserRole = "cajero"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"column:username;size:60;uniqueIndex;not null"`
	PasswordHash string   `gorm:"column:password;size:100;not null"`
	Role         UserRole `gorm:"column:rol;size:20;not null"`
}

func (User) TableName() string { return "usuario" }
