package selection

import (
	"errors"
	"fmt"

	"blockcanvas/internal/domain"
)

// ErrorCode classifies a failed selection action
type ErrorCode string

const (
	// CodeBlockNotFound: the referenced id is not in the document
	CodeBlockNotFound ErrorCode = "BLOCK_NOT_FOUND"
	// CodeNoBlocksAvailable: the document is empty, or no block is focused
	CodeNoBlocksAvailable ErrorCode = "NO_BLOCKS_AVAILABLE"
	// CodeAlreadyEditing: navigation attempted while in edit mode
	CodeAlreadyEditing ErrorCode = "ALREADY_EDITING"
)

// Error is the value returned by failed actions. State is never modified
// when an action returns an Error.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error with the same code, so errors.Is works against the sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is
var (
	ErrBlockNotFound     = &Error{Code: CodeBlockNotFound}
	ErrNoBlocksAvailable = &Error{Code: CodeNoBlocksAvailable}
	ErrAlreadyEditing    = &Error{Code: CodeAlreadyEditing}
)

// CodeOf returns the code of a selection error, or "" for nil and foreign errors
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

func blockNotFound(id domain.BlockID) *Error {
	return &Error{Code: CodeBlockNotFound, Message: fmt.Sprintf("block %q not found", id)}
}

// unknownDirection has no target block to move to
func unknownDirection(dir Direction) *Error {
	return &Error{Code: CodeBlockNotFound, Message: fmt.Sprintf("no block in direction %q", dir)}
}

func noBlocks() *Error {
	return &Error{Code: CodeNoBlocksAvailable, Message: "document has no blocks"}
}

// noFocus reuses NO_BLOCKS_AVAILABLE; callers match on the code
func noFocus() *Error {
	return &Error{Code: CodeNoBlocksAvailable, Message: "no block is focused"}
}

func alreadyEditing() *Error {
	return &Error{Code: CodeAlreadyEditing, Message: "navigation is disabled while editing"}
}
