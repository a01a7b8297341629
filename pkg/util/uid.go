package util

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidUID is returned for any uid reference that does not decode to a primary key.
var ErrInvalidUID = errors.New("invalid uid reference")

// EncodeUID turns a primary key into the URL-safe reference carried in reset links.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID. Padded input is accepted.
func DecodeUID(ref string) (uint, error) {
	ref = strings.TrimRight(strings.TrimSpace(ref), "=")
	if ref == "" {
		return 0, ErrInvalidUID
	}

	raw, err := base64.RawURLEncoding.DecodeString(ref)
	if err != nil {
		return 0, ErrInvalidUID
	}

	// keys are signed bigint columns, so anything past the signed range cannot exist
	id, err := strconv.ParseUint(string(raw), 10, strconv.IntSize-1)
	if err != nil || id == 0 {
		return 0, ErrInvalidUID
	}
	return uint(id), nil
}
