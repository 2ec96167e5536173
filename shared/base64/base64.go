// Package base64 reads browser data URLs such as "data:image/png;base64,iVBO...".
package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrNotDataURL = errors.New("not a base64 data URL")

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// GetContentType returns the declared media type of a data URL, or "" when the
// URL carries no base64 marker.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode returns the declared media type and the payload of a data URL.
func Decode(file string) (string, []byte, error) {
	if !strings.HasPrefix(file, dataPrefix) {
		return "", nil, ErrNotDataURL
	}

	_, payload, found := strings.Cut(file, base64Marker)
	if !found {
		return "", nil, ErrNotDataURL
	}

	data, err := stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL payload: %w", err)
	}

	return GetContentType(file), data, nil
}
