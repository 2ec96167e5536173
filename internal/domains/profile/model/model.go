package model

import "hostel/shared/model"

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID          = "id"
	FieldEmail       = "email"
	FieldFullName    = "full_name"
	FieldRole        = "role"
	FieldPhoneNumber = "phone_number"
)

// Profile is the application identity record, keyed by the auth user id.
type Profile struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phone_number"`
	model.Timestamps
}
