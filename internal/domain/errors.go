// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates malformed or missing input.
var ErrValidation = errors.New("validation failed")

// ErrForbidden indicates the caller is authenticated but not authorized
// to act on the entity.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the entity collides with an existing one
// (e.g. duplicate email on registration).
var ErrConflict = errors.New("conflict: resource already exists")
