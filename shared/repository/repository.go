package repository

import (
	"context"
	"errors"
	"fmt"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/shared"
	"hostel/shared/constant"
	"hostel/shared/dto"
	"hostel/shared/logger"
	"net/http"
	"net/url"
	"reflect"
	"strings"
)

var (
	errRequiredFilter = errors.New("required filter")
)

// Repository is a typed view of one table of the data API. Joined relations are
// declared on T with `embed:"target"` tags, e.g.
//
//	type RoomDetail struct {
//		room.Room
//		Hotel *hotel.Hotel `json:"hotel" embed:"hotels"`
//	}
//
// which selects `*,hotel:hotels(*)`.
type Repository[T any] struct {
	client        postgrest.Client
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	selectClause  string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, client postgrest.Client, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		client:        client,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		selectClause:  SelectClause(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := repo.buildQuery(filter, columns...)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query.Encode())

	_, err = repo.client.Do(ctx, postgrest.Request{
		Method: http.MethodGet,
		Table:  repo.table,
		Query:  query,
		Single: true,
	}, &model)
	if err != nil {
		logger.ErrorWithStack(err)

		return model, err //nolint:wrapcheck
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) (models []T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := repo.buildQuery(filter, columns...)
	params.Apply(query)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query.Encode())

	_, err = repo.client.Do(ctx, postgrest.Request{
		Method: http.MethodGet,
		Table:  repo.table,
		Query:  query,
	}, &models)
	if err != nil {
		logger.ErrorWithStack(err)

		return []T{}, err //nolint:wrapcheck
	}

	if models == nil {
		models = []T{}
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Count", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := repo.buildQuery(filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query.Encode())

	res, err := repo.client.Do(ctx, postgrest.Request{
		Method: http.MethodHead,
		Table:  repo.table,
		Query:  query,
		Prefer: []string{constant.PreferCountExact},
	}, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, err //nolint:wrapcheck
	}

	if res.Count < 0 {
		return 0, fmt.Errorf("failed to count data (%s): no count in response", repo.entitas)
	}

	return res.Count, nil
}

// Insert writes one row and returns it as persisted, with T's relations embedded.
func (repo *Repository[T]) Insert(ctx context.Context, payload any) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = repo.client.Do(ctx, postgrest.Request{
		Method: http.MethodPost,
		Table:  repo.table,
		Query:  url.Values{"select": {repo.selectClause}},
		Body:   payload,
		Single: true,
		Prefer: []string{constant.PreferReturnFull},
	}, &model)
	if err != nil {
		logger.ErrorWithStack(err)

		return model, err //nolint:wrapcheck
	}

	return model, nil
}

// Update applies a partial change to the row with the given id and returns the full row.
// An empty change set writes nothing and returns the current row.
func (repo *Repository[T]) Update(ctx context.Context, id string, mod map[string]any) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, repo.primaryColumn, "")

	if len(mod) == 0 {
		scope.AddEvent("empty update")

		return repo.Get(ctx, filter)
	}

	return repo.patchOne(ctx, scope, filter, mod)
}

// UpdateWhere applies the change to the single row matching filter and returns it.
// No matching row is a not-found failure, which makes filter a write precondition.
func (repo *Repository[T]) UpdateWhere(ctx context.Context, filter dto.FilterGroup, mod map[string]any) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.UpdateWhere", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(filter.Filters) == 0 {
		return model, errRequiredFilter
	}

	return repo.patchOne(ctx, scope, filter, mod)
}

func (repo *Repository[T]) patchOne(ctx context.Context, scope otel.Scope, filter dto.FilterGroup, mod map[string]any) (model T, err error) {
	query := repo.buildQuery(filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query.Encode())

	_, err = repo.client.Do(ctx, postgrest.Request{
		Method: http.MethodPatch,
		Table:  repo.table,
		Query:  query,
		Body:   mod,
		Single: true,
		Prefer: []string{constant.PreferReturnFull},
	}, &model)
	if err != nil {
		logger.ErrorWithStack(err)

		return model, err //nolint:wrapcheck
	}

	return model, nil
}

// UpdateMany applies the change to every matching row without reading them back.
func (repo *Repository[T]) UpdateMany(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.UpdateMany", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := filter.GetQueryParams()
	if len(query) == 0 {
		return errRequiredFilter
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query.Encode())

	_, err = repo.client.Do(ctx, postgrest.Request{
		Method: http.MethodPatch,
		Table:  repo.table,
		Query:  query,
		Body:   mod,
		Prefer: []string{constant.PreferReturnMinimal},
	}, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return err //nolint:wrapcheck
	}

	return nil
}

// Delete removes the row with the given id. Deleting nothing is a not-found failure.
func (repo *Repository[T]) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	byID := shared.FilterByID(id, repo.primaryColumn, "")
	query := byID.GetQueryParams()
	query.Set("select", repo.primaryColumn)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query.Encode())

	var deleted map[string]any

	_, err = repo.client.Do(ctx, postgrest.Request{
		Method: http.MethodDelete,
		Table:  repo.table,
		Query:  query,
		Single: true,
		Prefer: []string{constant.PreferReturnFull},
	}, &deleted)
	if err != nil {
		logger.ErrorWithStack(err)

		return err //nolint:wrapcheck
	}

	return nil
}

func (repo *Repository[T]) buildQuery(filter dto.FilterGroup, columns ...string) url.Values {
	query := filter.GetQueryParams()

	if len(columns) > 0 {
		query.Set("select", strings.Join(columns, ","))
	} else {
		query.Set("select", repo.selectClause)
	}

	return query
}

// SelectClause derives the select parameter for t: every column of the row plus one
// alias:target(...) entry per `embed` tagged field, recursively.
func SelectClause(t reflect.Type) string {
	return strings.Join(append([]string{constant.Asterix}, getEmbeds(t)...), ",")
}

func getEmbeds(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	embeds := []string{}

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous {
			embeds = append(embeds, getEmbeds(field.Type)...)

			continue
		}

		target := field.Tag.Get("embed")
		if target == "" {
			continue
		}

		alias, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if alias == "" {
			alias = field.Name
		}

		embeds = append(embeds, fmt.Sprintf("%s:%s(%s)", alias, target, SelectClause(field.Type)))
	}

	return embeds
}
