package model

import (
	"hostel/infras/gotrue"
	profileModel "hostel/internal/domains/profile/model"
)

const (
	MetadataFullName    = "full_name"
	MetadataRole        = "role"
	MetadataPhoneNumber = "phone_number"
	MetadataUniversity  = "university"
)

// AuthenticatedUser is the auth identity joined with at most one profile.
// Profile is nil in the degraded state where the identity is known but the
// profile could not be loaded.
type AuthenticatedUser struct {
	gotrue.User
	Profile *profileModel.Profile `json:"profile"`
}
