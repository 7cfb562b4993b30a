// Package store defines the persistence interface and its sentinel errors.
package store

import "errors"

// Sentinel errors returned by store implementations. Services translate
// these into domain errors at the boundary.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInUse         = errors.New("resource is referenced and cannot be deleted")
)
