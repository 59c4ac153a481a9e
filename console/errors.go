package console

import (
	"errors"

	"github.com/jacentio/vendoradmin/store"
	"github.com/jacentio/vendoradmin/validate"
)

// ErrNotEditing is returned when an editor operation runs outside Editing.
var ErrNotEditing = errors.New("console: not editing")

// Notice codes.
const (
	CodeInvalid           = "invalid"
	CodeNotFound          = "not_found"
	CodeParentNotFound    = "parent_not_found"
	CodeConflict          = "conflict"
	CodeStoreUnavailable  = "store_unavailable"
	CodeCascadeIncomplete = "cascade_incomplete"
	CodeNotEditing        = "not_editing"
	CodeInternal          = "internal"
)

// Message is a user-visible notice.
type Message struct {
	Code string `json:"code"`
	Text string `json:"message"`
}

// MapError turns an error into a notice. It returns the zero Message for nil.
//
// A partial cascade is reported as such even when the failed children
// wrap store.ErrUnavailable.
func MapError(err error) Message {
	var verrs validate.Errors
	switch {
	case err == nil:
		return Message{}
	case errors.As(err, &verrs):
		return Message{Code: CodeInvalid, Text: "Please correct the highlighted fields"}
	case errors.Is(err, store.ErrCascadeIncomplete):
		return Message{Code: CodeCascadeIncomplete, Text: "Deleted, but some related records could not be removed"}
	case errors.Is(err, store.ErrParentNotFound):
		return Message{Code: CodeParentNotFound, Text: "The owning record no longer exists"}
	case errors.Is(err, store.ErrNotFound):
		return Message{Code: CodeNotFound, Text: "Record not found"}
	case errors.Is(err, store.ErrAlreadyExists):
		return Message{Code: CodeConflict, Text: "Record already exists"}
	case errors.Is(err, store.ErrUnavailable):
		return Message{Code: CodeStoreUnavailable, Text: "The record store is unavailable, please try again"}
	case errors.Is(err, ErrNotEditing):
		return Message{Code: CodeNotEditing, Text: "No form is open"}
	default:
		return Message{Code: CodeInternal, Text: "Something went wrong"}
	}
}
