package domain

import "time"

// UserType is the role tag assigned once at registration.
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeAdmin   UserType = "admin"
)

// User is the domain model for registered accounts, both students and admins.
type User struct {
	ID            string
	Email         string
	FirstName     string
	PasswordHash  string
	UserType      UserType
	LastSentDate  *time.Time
	MessagesToday int
	CreatedAt     time.Time
}

// IsStudent reports whether the account was classified as a student.
func (u *User) IsStudent() bool {
	return u != nil && u.UserType == UserTypeStudent
}

// IsAdmin reports whether the account was classified as an administrator.
func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}
