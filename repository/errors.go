package repository

import "errors"

var (
	// ErrDuplicateCourseID is returned when a course slug is already taken.
	ErrDuplicateCourseID = errors.New("a course with this ID already exists")
	// ErrNotFound covers both absent records and records owned by another
	// user; callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found or access denied")
)
