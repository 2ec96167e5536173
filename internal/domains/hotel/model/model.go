package model

import "hostel/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID      = "id"
	FieldOwnerID = "owner_id"
	FieldImages  = "images"
)

// Hotel is an owner-scoped property listing.
type Hotel struct {
	ID            string   `json:"id"`
	OwnerID       string   `json:"owner_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	ContactNumber string   `json:"contact_number"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	model.Timestamps
}
