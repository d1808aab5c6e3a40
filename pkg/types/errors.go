package types

import "errors"

// Document lifecycle errors.
var (
	// ErrNotFound indicates the playbook document does not exist yet.
	// Callers may treat this as empty state rather than a hard failure.
	ErrNotFound = errors.New("playbook document not found")

	// ErrCorruptDocument indicates the document exists but could not be
	// parsed. It is surfaced verbatim, never silently repaired.
	ErrCorruptDocument = errors.New("playbook document is corrupt")

	// ErrAlreadyExists indicates an initialize without force against an
	// existing document.
	ErrAlreadyExists = errors.New("playbook document already exists")
)

// Entity validation errors.
var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidContent  = errors.New("content must not be empty")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)
