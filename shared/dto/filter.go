package dto

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

const reservedChars = ",.:()\" "

// Filter is one predicate. Table names an embedded resource path (e.g. "room.hotel")
// when the predicate targets a joined relation rather than the queried table.
type Filter struct {
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table != "" {
		return fmt.Sprintf("%s.%s", f.Table, f.Field)
	}

	return f.Field
}

// operand renders operator and value, e.g. "eq.42" or "in.(1,2)". Quoted values are needed inside logic trees.
func (f *Filter) operand(quoted bool) string {
	switch f.Operator {
	case FilterOperatorEq:
		return "eq." + formatValue(f.Value, quoted)
	case FilterOperatorNotEq:
		return "neq." + formatValue(f.Value, quoted)
	case FilterOperatorLessEq:
		return "lte." + formatValue(f.Value, quoted)
	case FilterOperatorGreaterEq:
		return "gte." + formatValue(f.Value, quoted)
	case FilterOperatorLike:
		return "ilike." + formatValue(fmt.Sprintf("*%v*", f.Value), quoted)
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)

		switch val.Kind() {
		case reflect.Array, reflect.Slice:
			items := make([]string, val.Len())

			for idx := range val.Len() {
				items[idx] = formatValue(val.Index(idx).Interface(), true)
			}

			return fmt.Sprintf("in.(%s)", strings.Join(items, ","))
		default:
			return fmt.Sprintf("in.(%s)", formatValue(f.Value, true))
		}
	case FilterIsNull:
		return "is.null"
	case FilterIsNotNull:
		return "not.is.null"
	default:
		return ""
	}
}

// GetQueryParam renders the predicate as a standalone query parameter.
func (f *Filter) GetQueryParam() (string, string) {
	return f.column(), f.operand(false)
}

// GetExpression renders the predicate for use inside an and()/or() tree.
func (f *Filter) GetExpression() string {
	operand := f.operand(true)
	if operand == "" {
		return ""
	}

	return f.column() + "." + operand
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) isOr() bool {
	return strings.EqualFold(f.Operator, FilterGroupOperatorOr)
}

func (f *FilterGroup) expressions() []string {
	exprs := []string{}

	for _, filter := range f.Filters {
		var expr string

		switch fill := filter.(type) {
		case Filter:
			expr = fill.GetExpression()
		case FilterGroup:
			expr = fill.GetExpression()
		}

		if expr != "" {
			exprs = append(exprs, expr)
		}
	}

	return exprs
}

// GetExpression renders the group as a logic tree node: and(...) or or(...).
func (f *FilterGroup) GetExpression() string {
	exprs := f.expressions()
	if len(exprs) == 0 {
		return ""
	}

	op := "and"
	if f.isOr() {
		op = "or"
	}

	return fmt.Sprintf("%s(%s)", op, strings.Join(exprs, ","))
}

// GetQueryParams renders the group as query parameters. An AND group (the default)
// emits one parameter per predicate; an OR group emits a single or=(...) parameter.
func (f *FilterGroup) GetQueryParams() url.Values {
	values := url.Values{}

	if f.isOr() {
		if exprs := f.expressions(); len(exprs) > 0 {
			values.Add("or", fmt.Sprintf("(%s)", strings.Join(exprs, ",")))
		}

		return values
	}

	for _, filter := range f.Filters {
		switch fill := filter.(type) {
		case Filter:
			key, value := fill.GetQueryParam()
			if value != "" {
				values.Add(key, value)
			}
		case FilterGroup:
			exprs := fill.expressions()
			if len(exprs) == 0 {
				continue
			}

			key := "and"
			if fill.isOr() {
				key = "or"
			}

			values.Add(key, fmt.Sprintf("(%s)", strings.Join(exprs, ",")))
		}
	}

	return values
}

func formatValue(value any, quoted bool) string {
	str := fmt.Sprintf("%v", value)

	if !quoted || !strings.ContainsAny(str, reservedChars) {
		return str
	}

	str = strings.ReplaceAll(str, `\`, `\\`)
	str = strings.ReplaceAll(str, `"`, `\"`)

	return `"` + str + `"`
}
