package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidSlot       = errors.New("invalid slot")
	ErrDuplicateRejected = errors.New("already in collection")
	ErrAlreadyExists     = errors.New("already exists")
	ErrSlotConflict      = errors.New("part already used in another slot")
	ErrStorageCorrupt    = errors.New("storage corrupt")
	ErrStorageUnsafe     = errors.New("refusing to overwrite non-empty file with an empty collection")
	ErrIOFailure         = errors.New("i/o failure")
	ErrUnknownCombo      = errors.New("unknown combo type")
	ErrEmptyCategory     = errors.New("no parts in category")
)
