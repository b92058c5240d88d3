package repository

import "errors"

// Sentinel errors returned by the repositories. Check with errors.Is.
var (
	// ErrDuplicateItem is returned when adding an item that already has a card.
	ErrDuplicateItem = errors.New("item already has a card")

	// ErrNotFound is returned when an operation names an unknown item.
	ErrNotFound = errors.New("card not found")
)
