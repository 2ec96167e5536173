package helper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hostel/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var ErrUnknownOwner = errors.New("no profile with that email")

type SeedRoom struct {
	Number    string
	Type      string
	Price     float64
	Amenities []string
}

type SeedHotel struct {
	Name        string
	Description string
	Address     string
	Amenities   []string
	Rooms       []SeedRoom
}

// Catalogue is the demo inventory for local development. Prices are in UGX.
func Catalogue() []SeedHotel {
	return []SeedHotel{
		{
			Name:        "Olympia Hostel",
			Description: "Modern accommodation with excellent facilities for students. Located just 5 minutes from campus.",
			Address:     "23 University Road, Kampala",
			Amenities:   []string{"WiFi", "Security", "Study Room", "Laundry", "Power Backup"},
			Rooms: []SeedRoom{
				{Number: "101", Type: "Single", Price: 450000, Amenities: []string{"Bed", "Desk", "Wardrobe", "Private Bathroom"}},
				{Number: "102", Type: "Double", Price: 350000, Amenities: []string{"Beds", "Desks", "Wardrobe", "Shared Bathroom"}},
			},
		},
		{
			Name:        "Livingstone Hostel",
			Description: "Affordable and comfortable accommodation for students with all essential amenities.",
			Address:     "15 Kyambogo Road, Kampala",
			Amenities:   []string{"WiFi", "Security", "Cafeteria", "Laundry"},
			Rooms: []SeedRoom{
				{Number: "A1", Type: "Single", Price: 400000, Amenities: []string{"Bed", "Desk", "Wardrobe", "Shared Bathroom"}},
				{Number: "A2", Type: "Triple", Price: 300000, Amenities: []string{"Beds", "Desks", "Wardrobe", "Shared Bathroom"}},
			},
		},
		{
			Name:        "Sunset Residences",
			Description: "Premium hostel with modern facilities and a great view of the city.",
			Address:     "55 Mbarara Hill, Mbarara",
			Amenities:   []string{"WiFi", "Security", "Gym", "Swimming Pool", "Study Room", "Laundry", "Power Backup"},
			Rooms: []SeedRoom{
				{Number: "S1", Type: "Single Deluxe", Price: 550000, Amenities: []string{"Bed", "Desk", "Wardrobe", "Private Bathroom", "AC", "TV"}},
				{Number: "S2", Type: "Double", Price: 450000, Amenities: []string{"Beds", "Desks", "Wardrobe", "Shared Bathroom", "AC"}},
			},
		},
		{
			Name:        "Northern Star Hostel",
			Description: "Comfortable and safe accommodation for Gulu University students.",
			Address:     "12 Gulu Avenue, Gulu",
			Amenities:   []string{"WiFi", "Security", "Cafeteria", "Power Backup"},
			Rooms: []SeedRoom{
				{Number: "N1", Type: "Single", Price: 380000, Amenities: []string{"Bed", "Desk", "Wardrobe", "Shared Bathroom"}},
				{Number: "N2", Type: "Double", Price: 320000, Amenities: []string{"Beds", "Desks", "Wardrobe", "Shared Bathroom"}},
			},
		},
		{
			Name:        "Eastern Comfort",
			Description: "Peaceful and well-maintained hostel for Busitema University students.",
			Address:     "32 Tororo Road, Tororo",
			Amenities:   []string{"WiFi", "Security", "Study Room", "Laundry", "Garden"},
			Rooms: []SeedRoom{
				{Number: "E1", Type: "Single", Price: 400000, Amenities: []string{"Bed", "Desk", "Wardrobe", "Shared Bathroom"}},
				{Number: "E2", Type: "Double", Price: 350000, Amenities: []string{"Beds", "Desks", "Wardrobe", "Shared Bathroom"}},
			},
		},
	}
}

// Seed gives the owner identified by email the demo catalogue. Hotels the owner
// already has by name and rooms already present by number are left alone, so
// running it twice changes nothing.
func Seed(ctx context.Context, db *sqlx.DB, ownerEmail string, hotels []SeedHotel) (err error) {
	var ownerID string

	err = db.GetContext(ctx, &ownerID, `SELECT id FROM profiles WHERE email = $1`, ownerEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrUnknownOwner, ownerEmail)
	}

	if err != nil {
		return fmt.Errorf("looking up owner: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `UPDATE profiles SET role = $1 WHERE id = $2`, constant.RoleOwner, ownerID); err != nil {
		return fmt.Errorf("promoting owner: %w", err)
	}

	for _, hotel := range hotels {
		hotelID, err := upsertHotel(ctx, tx, ownerID, hotel)
		if err != nil {
			return err
		}

		for _, room := range hotel.Rooms {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO rooms (hotel_id, room_number, type, price, status, amenities)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (hotel_id, room_number) DO NOTHING`,
				hotelID, room.Number, room.Type, room.Price, constant.RoomStatusAvailable, pq.Array(room.Amenities),
			)
			if err != nil {
				return fmt.Errorf("seeding room %s of %s: %w", room.Number, hotel.Name, err)
			}
		}

		log.Info().Str("hotel", hotel.Name).Int("rooms", len(hotel.Rooms)).Msg("Seeded hotel")
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	return nil
}

func upsertHotel(ctx context.Context, tx *sqlx.Tx, ownerID string, hotel SeedHotel) (string, error) {
	var id string

	err := tx.GetContext(ctx, &id, `SELECT id FROM hotels WHERE owner_id = $1 AND name = $2`, ownerID, hotel.Name)
	if err == nil {
		return id, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up hotel %s: %w", hotel.Name, err)
	}

	err = tx.GetContext(ctx, &id, `
		INSERT INTO hotels (owner_id, name, description, address, amenities)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		ownerID, hotel.Name, hotel.Description, hotel.Address, pq.Array(hotel.Amenities),
	)
	if err != nil {
		return "", fmt.Errorf("seeding hotel %s: %w", hotel.Name, err)
	}

	return id, nil
}
