package auth

import "catalog-admin/internal/validation"

type LoginForm struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

var loginMessages = validation.Messages{
	"identifier": "Email or phone number is required",
	"password":   "Password is required",
}

type RegistrationForm struct {
	Name        string `json:"name" validate:"min=2"`
	Email       string `json:"email" validate:"required_without=PhoneNumber,omitempty,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,bdphone"`
	Password    string `json:"password" validate:"min=8"`
}

var registrationMessages = validation.Messages{
	"name":                   "Name must be at least 2 characters",
	"email.required_without": "Either email or phone number is required",
	"email.email":            "Invalid email address",
	"phoneNumber":            "Invalid Bangladeshi phone number",
	"password":               "Password must be at least 8 characters",
}

// Request converts the form to the wire payload; empty contact fields are
// sent as null.
func (f RegistrationForm) Request() RegisterRequest {
	return RegisterRequest{
		Name:        f.Name,
		Email:       optional(f.Email),
		PhoneNumber: optional(f.PhoneNumber),
		Password:    f.Password,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
