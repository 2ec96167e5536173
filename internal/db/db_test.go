package db_test

import (
	"context"
	"encoding/json"
	"fmt"
	"hostel/config"
	"hostel/infras/otel/mocks"
	"hostel/infras/postgrest"
	"hostel/internal/db"
	hotelDto "hostel/internal/domains/hotel/model/dto"
	"hostel/shared/failure"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row = map[string]any

// fakeStore answers the handful of data API shapes the façade issues.
type fakeStore struct {
	mu             sync.Mutex
	hotels         map[string]row
	rooms          map[string]row
	bookings       map[string]row
	failRoomWrites bool
	patches        []string
	// afterRead runs once a row has been served by id, still under the store lock.
	afterRead func(table, id string)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hotels:   map[string]row{},
		rooms:    map[string]row{},
		bookings: map[string]row{},
	}
}

func (s *fakeStore) table(name string) map[string]row {
	switch name {
	case "hotels":
		return s.hotels
	case "rooms":
		return s.rooms
	case "bookings":
		return s.bookings
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func noRows(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotAcceptable, map[string]string{
		"code":    "PGRST116",
		"message": "JSON object requested, multiple (or no) rows returned",
		"details": "The result contains 0 rows",
	})
}

func eqValue(r *http.Request, key string) (string, bool) {
	raw := r.URL.Query().Get(key)
	if !strings.HasPrefix(raw, "eq.") {
		return "", false
	}

	return strings.TrimPrefix(raw, "eq."), true
}

// expand attaches the relations a booking select asks for.
func (s *fakeStore) expand(booking row, withHotel bool) row {
	out := maps.Clone(booking)

	room := maps.Clone(s.rooms[booking["room_id"].(string)])
	if withHotel {
		room["hotel"] = s.hotels[room["hotel_id"].(string)]
	}

	out["room"] = room
	out["user"] = nil

	return out
}

func (s *fakeStore) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := chi.URLParam(r, "table")
	rows := s.table(name)
	single := r.Header.Get("Accept") == "application/vnd.pgrst.object+json"

	if id, ok := eqValue(r, "id"); ok {
		found, exists := rows[id]
		if !exists {
			noRows(w)

			return
		}

		if name == "bookings" {
			found = s.expand(found, false)
		} else {
			found = maps.Clone(found)
		}

		if s.afterRead != nil {
			s.afterRead(name, id)
		}

		writeJSON(w, http.StatusOK, found)

		return
	}

	if single {
		noRows(w)

		return
	}

	list := []row{}

	for _, candidate := range rows {
		switch {
		case name == "rooms":
			if hotelID, ok := eqValue(r, "hotel_id"); ok && candidate["hotel_id"] != hotelID {
				continue
			}
		case name == "bookings":
			expanded, ok := s.ownedBooking(r, candidate)
			if !ok {
				continue
			}

			candidate = expanded
		}

		list = append(list, candidate)
	}

	if r.URL.Query().Get("order") == "created_at.desc" {
		slices.SortFunc(list, func(a, b row) int {
			return strings.Compare(b["created_at"].(string), a["created_at"].(string))
		})
	}

	writeJSON(w, http.StatusOK, list)
}

// ownedBooking keeps a booking only when it matches the owner and optional status filters.
func (s *fakeStore) ownedBooking(r *http.Request, candidate row) (row, bool) {
	ownerID, ok := eqValue(r, "room.hotel.owner_id")
	if !ok {
		return nil, false
	}

	if status, ok := eqValue(r, "status"); ok && candidate["status"] != status {
		return nil, false
	}

	expanded := s.expand(candidate, true)
	if expanded["room"].(row)["hotel"].(row)["owner_id"] != ownerID {
		return nil, false
	}

	return expanded, true
}

func (s *fakeStore) head(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, candidate := range s.bookings {
		if _, ok := s.ownedBooking(r, candidate); ok {
			count++
		}
	}

	w.Header().Set("Content-Range", fmt.Sprintf("*/%d", count))
	w.WriteHeader(http.StatusOK)
}

func (s *fakeStore) patch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := chi.URLParam(r, "table")
	s.patches = append(s.patches, name)

	if name == "rooms" && s.failRoomWrites {
		http.Error(w, "upstream connect error", http.StatusServiceUnavailable)

		return
	}

	id, _ := eqValue(r, "id")

	current, ok := s.table(name)[id]
	if !ok {
		noRows(w)

		return
	}

	if status, guarded := eqValue(r, "status"); guarded && current["status"] != status {
		noRows(w)

		return
	}

	var change row
	_ = json.NewDecoder(r.Body).Decode(&change)

	maps.Copy(current, change)

	if name == "bookings" {
		writeJSON(w, http.StatusOK, s.expand(current, false))

		return
	}

	writeJSON(w, http.StatusOK, current)
}

func newFacade(t *testing.T, store *fakeStore) *db.DB {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/rest/v1/{table}", store.get)
	router.Patch("/rest/v1/{table}", store.patch)
	router.Head("/rest/v1/{table}", store.head)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Store.URL = server.URL
	cfg.Store.PublicKey = "anon"
	cfg.Store.TimeoutSeconds = 5

	return db.Open(postgrest.New(cfg, nil, mocks.NewOtel()), nil, mocks.NewOtel())
}

func seed(store *fakeStore) {
	store.hotels["h-1"] = row{"id": "h-1", "owner_id": "o-1", "name": "Campus Lodge", "amenities": []string{"wifi"}, "images": []string{}}
	store.hotels["h-2"] = row{"id": "h-2", "owner_id": "o-2", "name": "Elsewhere Inn", "amenities": []string{}, "images": []string{}}
	store.rooms["r-1"] = row{"id": "r-1", "hotel_id": "h-1", "room_number": "101", "price": 80, "status": "available"}
	store.rooms["r-2"] = row{"id": "r-2", "hotel_id": "h-2", "room_number": "201", "price": 60, "status": "available"}
}

func booking(id, roomID, status string, createdAt time.Time) row {
	return row{
		"id":          id,
		"room_id":     roomID,
		"user_id":     "u-1",
		"check_in":    "2025-03-01",
		"check_out":   "2025-03-04",
		"total_price": 240,
		"status":      status,
		"created_at":  createdAt.UTC().Format(time.RFC3339),
	}
}

func TestFacade_NotFoundVersusEmptyList(t *testing.T) {
	store := newFakeStore()
	seed(store)

	facade := newFacade(t, store)

	_, err := facade.Hotels.GetByID(context.Background(), "missing")
	assert.True(t, failure.IsNotFound(err))

	rooms, err := facade.Rooms.GetByHotel(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
}

func TestFacade_EmptyUpdateIsIdempotent(t *testing.T) {
	store := newFakeStore()
	seed(store)

	facade := newFacade(t, store)

	hotel, err := facade.Hotels.Update(context.Background(), "h-1", hotelDto.UpdateHotelRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Campus Lodge", hotel.Name)
	assert.Equal(t, []string{"wifi"}, hotel.Amenities)

	again, err := facade.Hotels.Update(context.Background(), "h-1", hotelDto.UpdateHotelRequest{})
	require.NoError(t, err)
	assert.Equal(t, hotel, again)

	assert.Empty(t, store.patches)
}

func TestFacade_OwnerBookingsNewestFirst(t *testing.T) {
	store := newFakeStore()
	seed(store)

	t1 := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
	store.bookings["t2"] = booking("t2", "r-1", "pending", t1.Add(time.Hour))
	store.bookings["t1"] = booking("t1", "r-1", "pending", t1)
	store.bookings["t3"] = booking("t3", "r-1", "confirmed", t1.Add(2*time.Hour))
	store.bookings["other"] = booking("other", "r-2", "pending", t1.Add(3*time.Hour))

	facade := newFacade(t, store)

	got, err := facade.Bookings.GetByOwner(context.Background(), "o-1")
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, b := range got {
		ids[i] = b.ID
		assert.Equal(t, "o-1", b.Room.Hotel.OwnerID)
	}

	assert.Equal(t, []string{"t3", "t2", "t1"}, ids)
}

func TestFacade_ConfirmBooking(t *testing.T) {
	t.Run("room becomes booked", func(t *testing.T) {
		store := newFakeStore()
		seed(store)
		store.bookings["b-1"] = booking("b-1", "r-1", "pending", time.Now())

		facade := newFacade(t, store)

		confirmed, err := facade.Bookings.Confirm(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "confirmed", confirmed.Status)

		room, err := facade.Rooms.GetByID(context.Background(), "r-1")
		require.NoError(t, err)
		assert.Equal(t, "booked", room.Status)
	})

	t.Run("room write failure leaves the booking confirmed", func(t *testing.T) {
		store := newFakeStore()
		seed(store)
		store.bookings["b-1"] = booking("b-1", "r-1", "pending", time.Now())
		store.failRoomWrites = true

		facade := newFacade(t, store)

		confirmed, err := facade.Bookings.Confirm(context.Background(), "b-1")
		require.Error(t, err)
		assert.True(t, failure.IsRemoteUnavailable(err))
		assert.Equal(t, "confirmed", confirmed.Status)

		stored, err := facade.Bookings.GetByID(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "confirmed", stored.Status)

		room, err := facade.Rooms.GetByID(context.Background(), "r-1")
		require.NoError(t, err)
		assert.Equal(t, "available", room.Status)
	})

	t.Run("confirmed booking cannot be confirmed again", func(t *testing.T) {
		store := newFakeStore()
		seed(store)
		store.bookings["b-1"] = booking("b-1", "r-1", "confirmed", time.Now())

		facade := newFacade(t, store)

		_, err := facade.Bookings.Confirm(context.Background(), "b-1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Empty(t, store.patches)
	})
}

func TestFacade_CancelledWhileConfirming(t *testing.T) {
	store := newFakeStore()
	seed(store)
	store.bookings["b-1"] = booking("b-1", "r-1", "pending", time.Now())

	store.afterRead = func(table, id string) {
		if table == "bookings" && id == "b-1" {
			store.bookings["b-1"]["status"] = "cancelled"
		}
	}

	facade := newFacade(t, store)

	_, err := facade.Bookings.Confirm(context.Background(), "b-1")
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	store.afterRead = nil

	stored, err := facade.Bookings.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.Status)

	room, err := facade.Rooms.GetByID(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "available", room.Status)
	assert.Equal(t, []string{"bookings"}, store.patches)
}

func TestFacade_CountPendingByOwner(t *testing.T) {
	store := newFakeStore()
	seed(store)

	t1 := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
	store.bookings["p1"] = booking("p1", "r-1", "pending", t1)
	store.bookings["p2"] = booking("p2", "r-1", "pending", t1.Add(time.Hour))
	store.bookings["c1"] = booking("c1", "r-1", "confirmed", t1)
	store.bookings["other"] = booking("other", "r-2", "pending", t1)

	facade := newFacade(t, store)

	count, err := facade.Bookings.CountPendingByOwner(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
