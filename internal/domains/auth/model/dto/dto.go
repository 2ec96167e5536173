package dto

import (
	"hostel/internal/domains/auth/model"
	profileDto "hostel/internal/domains/profile/model/dto"
	"hostel/shared/constant"
)

// Registration is the closed set of attributes collected at sign up.
type Registration struct {
	FullName    string  `json:"full_name"              validate:"required,max=100"`
	Email       string  `json:"email"                  validate:"required,email,max=254"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	University  *string `json:"university,omitempty"   validate:"omitempty,max=150"`
	Role        string  `json:"role,omitempty"         validate:"omitempty,oneof=user owner admin"`
}

type SignUpRequest struct {
	Registration
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Metadata is what the auth server stores as user metadata.
func (r *Registration) Metadata() map[string]any {
	data := map[string]any{
		model.MetadataFullName: r.FullName,
		model.MetadataRole:     r.role(),
	}

	if r.PhoneNumber != nil {
		data[model.MetadataPhoneNumber] = *r.PhoneNumber
	}

	if r.University != nil {
		data[model.MetadataUniversity] = *r.University
	}

	return data
}

// ToProfile builds the profile row created for the new auth user.
func (r *Registration) ToProfile(userID string) profileDto.CreateProfileRequest {
	return profileDto.CreateProfileRequest{
		ID:          userID,
		Email:       r.Email,
		FullName:    r.FullName,
		Role:        r.role(),
		PhoneNumber: r.PhoneNumber,
	}
}

func (r *Registration) role() string {
	if r.Role == "" {
		return constant.RoleUser
	}

	return r.Role
}
