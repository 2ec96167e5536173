package dto

import (
	"hostel/internal/domains/hotel/model"
	profileModel "hostel/internal/domains/profile/model"
	roomModel "hostel/internal/domains/room/model"
	"hostel/shared/base64"
	"hostel/shared/failure"
)

type CreateHotelRequest struct {
	OwnerID       string   `json:"owner_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	ContactNumber string   `json:"contact_number"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

type UpdateHotelRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Address       *string   `json:"address"`
	ContactNumber *string   `json:"contact_number"`
	Amenities     *[]string `json:"amenities"`
	Images        *[]string `json:"images"`
}

// UploadImageRequest carries one image file, at most 5MB.
type UploadImageRequest struct {
	FileName string `validate:"required"`
	Data     []byte `validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

// NewUploadImageRequest reads an image sent as a data URL. The declared media type is
// ignored; the content is sniffed when the request is validated.
func NewUploadImageRequest(fileName, dataURL string) (UploadImageRequest, error) {
	_, data, err := base64.Decode(dataURL)
	if err != nil {
		return UploadImageRequest{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	return UploadImageRequest{FileName: fileName, Data: data}, nil
}

// HotelWithRooms is a hotel with its rooms.
type HotelWithRooms struct {
	model.Hotel
	Rooms []roomModel.Room `json:"rooms" embed:"rooms"`
}

// HotelDetail is a hotel with its owner profile and rooms.
type HotelDetail struct {
	HotelWithRooms
	Owner *profileModel.Profile `json:"owner" embed:"profiles!hotels_owner_id_fkey"`
}
