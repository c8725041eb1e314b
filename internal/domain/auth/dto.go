package auth

import (
	"time"
	"unicode/utf8"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/validator"
)

type SignupRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	DisplayName *string `json:"display_name"`
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if n := utf8.RuneCountInString(r.Username); n < 3 || n > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be between 3 and 50 characters",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	} else if len(r.Password) > 72 {
		// bcrypt ignores anything past 72 bytes
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 bytes",
		})
	}

	if r.DisplayName != nil && validator.IsEmpty(*r.DisplayName) {
		r.DisplayName = nil
	}
	if r.DisplayName != nil && utf8.RuneCountInString(*r.DisplayName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SessionResponse is returned by signup and login. Token goes into the session
// cookie and is never serialized into the body.
type SessionResponse struct {
	Token     string            `json:"-"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      user.UserResponse `json:"user"`
}
