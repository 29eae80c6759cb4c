package service

import (
	"errors"
	"fmt"

	"portfolio-photo-sync/repository"
)

// ErrInvalidScope is returned by listers for an empty folder/prefix.
var ErrInvalidScope = errors.New("listing scope must be a non-empty path prefix")

// ConfigurationError means required local state is missing (no owner record,
// no scope). Fatal; raised before any call to the media host.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TransportError means the media host could not be reached or refused the
// credentials. Fatal; no partial report is produced.
type TransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s transport error (HTTP %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s transport error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// LookupError is a failed duplicate check for one asset. Non-fatal.
type LookupError struct {
	ExternalID string
	Err        error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.ExternalID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// PersistError is a failed insert for one asset. Non-fatal.
type PersistError struct {
	ExternalID string
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.ExternalID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// IsDuplicate reports the duplicate variant: another writer catalogued the
// same external id between our lookup and our insert.
func (e *PersistError) IsDuplicate() bool {
	return errors.Is(e.Err, repository.ErrDuplicate)
}
