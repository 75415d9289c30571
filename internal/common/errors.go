package common

import "errors"

var (

	// gate errors
	ErrInvalidCode = errors.New("invalid code")

	// session errors
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")

	// upload errors
	ErrUploadLimitReached = errors.New("upload limit reached")
	ErrNoKindSelected     = errors.New("no upload type selected")
	ErrNoFileSelected     = errors.New("no file selected")
	ErrNoURLProvided      = errors.New("no url provided")
	ErrUnknownUpload      = errors.New("unknown upload")

	// chat errors
	ErrNoActiveUpload = errors.New("no active upload")
	ErrEmptyQuestion  = errors.New("empty question")
	ErrAskInFlight    = errors.New("a question is already pending")
)
