// Package errs holds the typed error shared by the detection packages.
package errs

import (
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code int

const (
	Unknown Code = iota
	DuplicateLanguage
	ProfileNotLoaded
	InitParam
	CannotDetect
	CannotOpenTrainData
	TrainDataFormat
	FailedToInitialize
)

var codeNames = [...]string{
	Unknown:             "Unknown",
	DuplicateLanguage:   "DuplicateLanguage",
	ProfileNotLoaded:    "ProfileNotLoaded",
	InitParam:           "InitParam",
	CannotDetect:        "CannotDetect",
	CannotOpenTrainData: "CannotOpenTrainData",
	TrainDataFormat:     "TrainDataFormat",
	FailedToInitialize:  "FailedToInitialize",
}

func (c Code) String() string {
	if int(c) >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is a failure with a Code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Code, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrDuplicateLanguage   = &Error{Code: DuplicateLanguage, Message: "duplicate language"}
	ErrProfileNotLoaded    = &Error{Code: ProfileNotLoaded, Message: "no language profile loaded"}
	ErrInitParam           = &Error{Code: InitParam, Message: "invalid parameter"}
	ErrCannotDetect        = &Error{Code: CannotDetect, Message: "no features in text"}
	ErrCannotOpenTrainData = &Error{Code: CannotOpenTrainData, Message: "cannot open training data"}
	ErrTrainDataFormat     = &Error{Code: TrainDataFormat, Message: "invalid training data"}
	ErrFailedToInitialize  = &Error{Code: FailedToInitialize, Message: "failed to initialize"}
)

// New creates an error with a code and a formatted message.
func New(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to a cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or Unknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}
