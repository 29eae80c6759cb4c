package repository

import "errors"

var (
	// ErrDuplicate is returned by Insert when the external id is already catalogued.
	ErrDuplicate = errors.New("photo with this external id already exists")

	// ErrNotFound is returned when a lookup by primary key or email matches nothing.
	ErrNotFound = errors.New("record not found")
)
