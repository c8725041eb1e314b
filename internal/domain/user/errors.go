package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameExists   = errors.New("username already in use")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidUsername  = errors.New("username must be between 3 and 50 characters")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)
