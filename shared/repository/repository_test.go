package repository_test

import (
	"context"
	"encoding/json"
	"hostel/config"
	"hostel/infras/otel/mocks"
	"hostel/infras/postgrest"
	"hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/repository"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

type hotel struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

type room struct {
	ID      string `json:"id"`
	HotelID string `json:"hotel_id"`
	Status  string `json:"status"`
}

type ownedHotel struct {
	hotel
	Owner *owner `json:"owner" embed:"profiles!hotels_owner_id_fkey"`
}

type hotelWithRooms struct {
	ownedHotel
	Rooms []room `json:"rooms" embed:"rooms"`
}

type roomWithHotel struct {
	room
	Hotel *ownedHotel `json:"hotel" embed:"hotels!inner"`
}

func TestSelectClause(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		expected string
	}{
		{
			name:     "plain row",
			typ:      reflect.TypeOf(hotel{}),
			expected: "*",
		},
		{
			name:     "named foreign key",
			typ:      reflect.TypeOf(ownedHotel{}),
			expected: "*,owner:profiles!hotels_owner_id_fkey(*)",
		},
		{
			name:     "embedded composite adds its own relations",
			typ:      reflect.TypeOf(hotelWithRooms{}),
			expected: "*,owner:profiles!hotels_owner_id_fkey(*),rooms:rooms(*)",
		},
		{
			name:     "nested inner join",
			typ:      reflect.TypeOf(roomWithHotel{}),
			expected: "*,hotel:hotels!inner(*,owner:profiles!hotels_owner_id_fkey(*))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repository.SelectClause(tt.typ))
		})
	}
}

type recorded struct {
	method string
	query  map[string][]string
	header http.Header
	body   map[string]any
}

func newRepo[T any](t *testing.T, table string, handler func(w http.ResponseWriter, r *http.Request)) (repository.Repository[T], *recorded) {
	t.Helper()

	rec := &recorded{}

	router := chi.NewRouter()
	router.HandleFunc("/rest/v1/"+table, func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.query = r.URL.Query()
		rec.header = r.Header.Clone()
		rec.body = nil

		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}

		handler(w, r)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Store.URL = server.URL
	cfg.Store.PublicKey = "anon"
	cfg.Store.TimeoutSeconds = 5

	client := postgrest.New(cfg, nil, mocks.NewOtel())

	return repository.NewRepository[T]("hotel", table, "id", client, mocks.NewOtel()), rec
}

func respond(status int, body any) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

var noRows = postgrest.StoreError{Code: "PGRST116", Message: "JSON object requested, multiple (or no) rows returned"}

func TestRepository_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, rec := newRepo[ownedHotel](t, "hotels", respond(http.StatusOK, map[string]any{
			"id": "h1", "owner_id": "o1", "name": "Sunrise", "owner": map[string]any{"id": "o1", "full_name": "Olu"},
		}))

		got, err := repo.Get(context.Background(), dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "id", Value: "h1", Operator: dto.FilterOperatorEq},
		}})

		require.NoError(t, err)
		assert.Equal(t, "Sunrise", got.Name)
		require.NotNil(t, got.Owner)
		assert.Equal(t, "Olu", got.Owner.FullName)

		assert.Equal(t, http.MethodGet, rec.method)
		assert.Equal(t, []string{"eq.h1"}, rec.query["id"])
		assert.Equal(t, []string{"*,owner:profiles!hotels_owner_id_fkey(*)"}, rec.query["select"])
		assert.Equal(t, "application/vnd.pgrst.object+json", rec.header.Get("Accept"))
	})

	t.Run("missing is not found", func(t *testing.T) {
		repo, _ := newRepo[hotel](t, "hotels", respond(http.StatusNotAcceptable, noRows))

		_, err := repo.Get(context.Background(), dto.FilterGroup{})

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("explicit columns", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "hotels", respond(http.StatusOK, map[string]any{"id": "h1"}))

		_, err := repo.Get(context.Background(), dto.FilterGroup{}, "id", "name")

		require.NoError(t, err)
		assert.Equal(t, []string{"id,name"}, rec.query["select"])
	})
}

func TestRepository_GetAll(t *testing.T) {
	t.Run("ordered list", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "hotels", respond(http.StatusOK, []map[string]any{{"id": "h2"}, {"id": "h1"}}))

		got, err := repo.GetAll(context.Background(), dto.Newest(), dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "owner_id", Value: "o1", Operator: dto.FilterOperatorEq},
		}})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "h2", got[0].ID)
		assert.Equal(t, []string{"created_at.desc"}, rec.query["order"])
		assert.Equal(t, []string{"eq.o1"}, rec.query["owner_id"])
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		repo, _ := newRepo[hotel](t, "hotels", respond(http.StatusOK, []any{}))

		got, err := repo.GetAll(context.Background(), dto.QueryParams{}, dto.FilterGroup{})

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("empty body is a transport failure", func(t *testing.T) {
		repo, _ := newRepo[hotel](t, "hotels", respond(http.StatusOK, nil))

		got, err := repo.GetAll(context.Background(), dto.QueryParams{}, dto.FilterGroup{})

		assert.True(t, failure.IsRemoteUnavailable(err))
		assert.NotNil(t, got)
	})
}

func TestRepository_Count(t *testing.T) {
	contentRange := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Range", "*/7")
		w.WriteHeader(http.StatusOK)
	}

	t.Run("whole table", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "hotels", contentRange)

		count, err := repo.Count(context.Background(), dto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, 7, count)
		assert.Equal(t, http.MethodHead, rec.method)
		assert.Equal(t, "count=exact", rec.header.Get("Prefer"))
	})

	t.Run("filter on a joined relation keeps the inner join", func(t *testing.T) {
		repo, rec := newRepo[roomWithHotel](t, "rooms", contentRange)

		count, err := repo.Count(context.Background(), dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "owner_id", Value: "o1", Operator: dto.FilterOperatorEq, Table: "hotel"},
		}})

		require.NoError(t, err)
		assert.Equal(t, 7, count)
		assert.Equal(t, []string{"eq.o1"}, rec.query["hotel.owner_id"])
		assert.Equal(t, []string{"*,hotel:hotels!inner(*,owner:profiles!hotels_owner_id_fkey(*))"}, rec.query["select"])
	})
}

func TestRepository_Insert(t *testing.T) {
	repo, rec := newRepo[ownedHotel](t, "hotels", respond(http.StatusCreated, map[string]any{
		"id": "h9", "owner_id": "o1", "name": "Harbor", "owner": map[string]any{"id": "o1"},
	}))

	got, err := repo.Insert(context.Background(), map[string]any{"owner_id": "o1", "name": "Harbor"})

	require.NoError(t, err)
	assert.Equal(t, "h9", got.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "return=representation", rec.header.Get("Prefer"))
	assert.Equal(t, "Harbor", rec.body["name"])
	assert.Equal(t, []string{"*,owner:profiles!hotels_owner_id_fkey(*)"}, rec.query["select"])
}

func TestRepository_Update(t *testing.T) {
	t.Run("partial update returns full row", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "hotels", respond(http.StatusOK, map[string]any{"id": "h1", "owner_id": "o1", "name": "Renamed"}))

		got, err := repo.Update(context.Background(), "h1", map[string]any{"name": "Renamed"})

		require.NoError(t, err)
		assert.Equal(t, hotel{ID: "h1", OwnerID: "o1", Name: "Renamed"}, got)
		assert.Equal(t, http.MethodPatch, rec.method)
		assert.Equal(t, []string{"eq.h1"}, rec.query["id"])
		assert.Equal(t, map[string]any{"name": "Renamed"}, rec.body)
	})

	t.Run("empty update re-reads the row", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "hotels", respond(http.StatusOK, map[string]any{"id": "h1", "name": "Same"}))

		got, err := repo.Update(context.Background(), "h1", map[string]any{})

		require.NoError(t, err)
		assert.Equal(t, "Same", got.Name)
		assert.Equal(t, http.MethodGet, rec.method)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, _ := newRepo[hotel](t, "hotels", respond(http.StatusNotAcceptable, noRows))

		_, err := repo.Update(context.Background(), "missing", map[string]any{"name": "x"})

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestRepository_UpdateWhere(t *testing.T) {
	stillAvailable := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: "r1", Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
	}}

	t.Run("precondition travels with the write", func(t *testing.T) {
		repo, rec := newRepo[room](t, "rooms", respond(http.StatusOK, map[string]any{"id": "r1", "status": "booked"}))

		got, err := repo.UpdateWhere(context.Background(), stillAvailable, map[string]any{"status": "booked"})

		require.NoError(t, err)
		assert.Equal(t, "booked", got.Status)
		assert.Equal(t, http.MethodPatch, rec.method)
		assert.Equal(t, []string{"eq.r1"}, rec.query["id"])
		assert.Equal(t, []string{"eq.available"}, rec.query["status"])
		assert.Equal(t, "application/vnd.pgrst.object+json", rec.header.Get("Accept"))
	})

	t.Run("row no longer matches", func(t *testing.T) {
		repo, _ := newRepo[room](t, "rooms", respond(http.StatusNotAcceptable, noRows))

		_, err := repo.UpdateWhere(context.Background(), stillAvailable, map[string]any{"status": "booked"})

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("refuses an unfiltered write", func(t *testing.T) {
		repo, rec := newRepo[room](t, "rooms", respond(http.StatusOK, nil))

		_, err := repo.UpdateWhere(context.Background(), dto.FilterGroup{}, map[string]any{"status": "booked"})

		require.Error(t, err)
		assert.Empty(t, rec.method)
	})
}

func TestRepository_UpdateMany(t *testing.T) {
	t.Run("writes without payload", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "messages", respond(http.StatusNoContent, nil))

		err := repo.UpdateMany(context.Background(), map[string]any{"read": true}, dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "id", Value: []string{"m1", "m2"}, Operator: dto.FilterOperatorIn},
		}})

		require.NoError(t, err)
		assert.Equal(t, "return=minimal", rec.header.Get("Prefer"))
		assert.Equal(t, []string{"in.(m1,m2)"}, rec.query["id"])
	})

	t.Run("refuses an unfiltered write", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "messages", respond(http.StatusNoContent, nil))

		err := repo.UpdateMany(context.Background(), map[string]any{"read": true}, dto.FilterGroup{})

		require.Error(t, err)
		assert.Empty(t, rec.method)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, rec := newRepo[hotel](t, "hotels", respond(http.StatusOK, map[string]any{"id": "h1"}))

		require.NoError(t, repo.Delete(context.Background(), "h1"))
		assert.Equal(t, http.MethodDelete, rec.method)
		assert.Equal(t, []string{"eq.h1"}, rec.query["id"])
	})

	t.Run("nothing deleted", func(t *testing.T) {
		repo, _ := newRepo[hotel](t, "hotels", respond(http.StatusNotAcceptable, noRows))

		assert.True(t, failure.IsNotFound(repo.Delete(context.Background(), "h1")))
	})
}
