package services

import "errors"

// Local validation errors. These are raised before any network call is
// made; the UI renders them as inline banners, distinct from both transport
// failures and backend messages.
var (
	ErrMissingFields   = errors.New("please fill in all required fields")
	ErrInvalidEmail    = errors.New("please provide a valid email address")
	ErrEmptyComment    = errors.New("a review needs a comment")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrInvalidStatus   = errors.New("status is not one of the reviewable values")
	ErrNoPaper         = errors.New("no paper loaded")
	ErrNotRevisable    = errors.New("only rejected papers can be revised")
	ErrNothingToRevise = errors.New("change the title or attach a file to revise")
	ErrNotDecided      = errors.New("paper has no final decision yet")
	ErrBusy            = errors.New("a request is already in flight")
)

// IsLocal reports whether err is one of the local validation errors, i.e.
// the action was rejected before any network call.
func IsLocal(err error) bool {
	for _, sentinel := range []error{
		ErrMissingFields, ErrInvalidEmail, ErrEmptyComment, ErrEmptyMessage,
		ErrInvalidStatus, ErrNoPaper, ErrNotRevisable, ErrNothingToRevise,
		ErrNotDecided, ErrBusy, ErrMissingReviewerName,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
