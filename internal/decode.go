package internal

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned for documents that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// ValidateEncoding checks that doc is valid UTF-8.
func ValidateEncoding(doc []byte) error {
	if _, n, err := transform.Bytes(encoding.UTF8Validator, doc); err != nil {
		return fmt.Errorf("%w: at byte offset %d", ErrInvalidEncoding, n)
	}
	return nil
}
