package models

import (
	"strings"
)

// UpdateUserRequest is the body of both the customer profile update and the
// banker user update. Absent fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitnil,min=3,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitnil,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitnil,min=6,max=72"`
}

// Normalize trims the username and email and lowercases the email.
func (r UpdateUserRequest) Normalize() UpdateUserRequest {
	if r.Username != nil {
		username := strings.TrimSpace(*r.Username)
		r.Username = &username
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
	return r
}

func (r UpdateUserRequest) Validate() error {
	return validateStruct(r)
}

type UpdateUserResponse struct {
	Message        string `json:"message"`
	Reauthenticate bool   `json:"reauthenticate,omitempty"`
}
