package models

import (
	"database/sql"
	"time"
)

type Role string

// Valeurs possibles pour le rôle d'un utilisateur
const (
	AdminRole Role = "ADMIN"
	UserRole  Role = "USER"
)

type User struct {
	ID               string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserName         string       `json:"username" gorm:"uniqueIndex"`
	Email            string       `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password         string       `json:"-"`
	FullName         string       `json:"fullName"`
	Role             Role         `json:"role" gorm:"type:varchar(20);default:'USER'"`
	ProfilePicture   string       `json:"profilePicture"`
	StripeCustomerId string       `json:"stripeCustomerId"`
	LastLoginAt      sql.NullTime `json:"lastLoginAt"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// UserCreate model for the register endpoint
// @Description modèle d'inscription d'un utilisateur
type UserCreate struct {
	UserName string `json:"username" binding:"required" example:"ahmetk"`
	Email    string `json:"email" binding:"required,email" example:"ahmet@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"Passw0rd"`
	FullName string `json:"fullName" example:"Ahmet Kaya"`
}

// UserLogin model for the login endpoint
type UserLogin struct {
	Email    string `json:"email" binding:"required,email" example:"ahmet@example.com"`
	Password string `json:"password" binding:"required" example:"Passw0rd"`
}

// UserUpdate model for profile updates
type UserUpdate struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (User) TableName() string {
	return "users"
}
