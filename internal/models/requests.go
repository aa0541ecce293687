package models

// Field order matters: validation stops at the first failing field.

// RegisterInput is the payload for both self-registration and administrative creation.
type RegisterInput struct {
	Name                 string  `json:"name" validate:"required,max=255"`
	Email                string  `json:"email" validate:"required,email,max=255"`
	Password             string  `json:"password" validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string  `json:"password_confirmation"`
	City                 *string `json:"city" validate:"omitempty,max=255"`
}

// LoginInput represents the request body for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput carries the mutable profile fields. The password is not one of them.
type UpdateUserInput struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Email string  `json:"email" validate:"required,email,max=255"`
	City  *string `json:"city" validate:"omitempty,max=255"`
}
