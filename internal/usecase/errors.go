package usecase

import "fmt"

type Kind string

const (
	KindBadRequest Kind = "bad_request"
	KindStorage    Kind = "storage"
	KindRender     Kind = "render"
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageValidate Stage = "validate"
	StagePersist  Stage = "persist"
	StageRender   Stage = "render"
	StageUpload   Stage = "upload"
	StageUpdate   Stage = "update"
	StageHistory  Stage = "history"
)

// Error is returned by every Service method that can fail. Its message is the
// underlying cause, unchanged, so callers can pass it through.
type Error struct {
	Kind  Kind
	Stage Stage
	Err   error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func fail(kind Kind, stage Stage, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}

func badRequest(format string, args ...any) *Error {
	return fail(KindBadRequest, StageValidate, fmt.Errorf(format, args...))
}
