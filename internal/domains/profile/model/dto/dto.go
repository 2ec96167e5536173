package dto

type CreateProfileRequest struct {
	ID          string  `json:"id"                     validate:"required"`
	Email       string  `json:"email"                  validate:"required,email"`
	FullName    string  `json:"full_name"              validate:"required,max=100"`
	Role        string  `json:"role"                   validate:"required,oneof=user owner admin"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
}

// UpdateProfileRequest is a partial change; nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"    validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Role        *string `json:"role"         validate:"omitempty,oneof=user owner admin"`
	Email       *string `json:"email"        validate:"omitempty,email"`
}
