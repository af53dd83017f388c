package domain

import (
	"github.com/briidgedotone/narra/pkg/errors"
)

const (
	CodeFetch          = "FETCH"
	CodeMissingContent = "MISSING_CONTENT"
	CodePersistence    = "PERSISTENCE"
)

var ErrMissingContent = errors.New("payload has no usable owner handle or content id")

// FetchError wraps a network, timeout or unsuccessful API response. A nil
// err yields a bare coded error.
func FetchError(err error, message string) error {
	if err == nil {
		return errors.NewWithCode(CodeFetch, message)
	}
	return errors.WrapWithCode(err, CodeFetch, message)
}

// MissingContentError wraps ErrMissingContent with what was missing.
func MissingContentError(message string) error {
	return errors.WrapWithCode(ErrMissingContent, CodeMissingContent, message)
}

// PersistenceError wraps a datastore failure or rejected write.
func PersistenceError(err error, message string) error {
	return errors.WrapWithCode(err, CodePersistence, message)
}

func IsFetchError(err error) bool {
	return errors.HasCode(err, CodeFetch)
}

func IsMissingContent(err error) bool {
	return errors.HasCode(err, CodeMissingContent)
}

func IsPersistenceError(err error) bool {
	return errors.HasCode(err, CodePersistence)
}
