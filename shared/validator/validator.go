package validator

import (
	"hostel/shared/failure"
	"slices"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerMimetypeValidation(field val.FieldLevel) bool {
	content, ok := field.Field().Interface().([]byte)
	if !ok || len(content) == 0 {
		return false
	}

	contentType := mimetype.Detect(content).String()
	allowedTypes := strings.Split(field.Param(), " ")

	return slices.ContainsFunc(allowedTypes, func(allowed string) bool {
		return mimetype.EqualsAny(contentType, allowed)
	})
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if content, ok := field.Field().Interface().([]byte); ok {
		fileSize = len(content)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("mimetypes", registerMimetypeValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("maxfilesize", registerFileSizeValidation)
	if err != nil {
		panic(err)
	}
}

// ValidateStruct validates data against its `validate` tags and reports the first
// failing field as a bad request.
// https://github.com/go-playground/validator
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
