package domain

import "time"

// VerificationStatus tracks whether a user proved ownership of their email.
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusVerified   VerificationStatus = "verified"
)

type User struct {
	UserID       string             `json:"id" dynamodbav:"user_id"`
	Username     string             `json:"username" dynamodbav:"username"`
	Email        string             `json:"email" dynamodbav:"email"`
	PasswordHash string             `json:"-" dynamodbav:"password_hash"`
	Status       VerificationStatus `json:"verification_status" dynamodbav:"verification_status"`
	CreatedAt    time.Time          `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time          `json:"updated" dynamodbav:"updated_at"`
}

func (u *User) Verified() bool { return u.Status == StatusVerified }

// SignupForm is the decoded POST /signup body.
type SignupForm struct {
	Username        string `validate:"required,max=64"`
	Email           string `validate:"required,email"`
	Password        string
	ConfirmPassword string
}
