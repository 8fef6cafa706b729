package domain

import "errors"

// Sentinel errors shared between the repository, the scheduling core and the
// HTTP handlers so each layer can map failures without inspecting SQL state.

// ErrNotFound is returned when a referenced record does not exist. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyPublished is returned when publish is attempted on a schedule
// that has already been published. Publication is single-fire.
var ErrAlreadyPublished = errors.New("schedule already published")

// ErrRoleInUse is returned when a role cannot be deleted because scheduled
// shifts still reference it.
var ErrRoleInUse = errors.New("role is referenced by scheduled shifts")

// ErrValidation wraps malformed-input failures, e.g. a week start that is
// not a Sunday or an end time before the start time.
var ErrValidation = errors.New("invalid input")
