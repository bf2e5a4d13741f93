package domain

import "errors"

// Resolution outcomes. The messages double as the reason strings returned
// to callers.
var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidInput    = errors.New("invalid input")
	ErrBoardNotFound   = errors.New("board not found")
	ErrListNotFound    = errors.New("list not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrNoAccess        = errors.New("no access")
	ErrInsufficient    = errors.New("insufficient role")
	ErrLookupFailed    = errors.New("error checking access")
	ErrForbidden       = errors.New("access forbidden")
	ErrLineageMismatch = errors.New("card lineage mismatch")
)

var ErrWorkspaceNotFound = errors.New("workspace not found")
var ErrNotificationFailed = errors.New("notification dispatch failed")

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBoardNotFound) ||
		errors.Is(err, ErrListNotFound) ||
		errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrWorkspaceNotFound)
}
