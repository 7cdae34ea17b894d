package cli

import "errors"

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingArg     = errors.New("missing argument")
	errTooManyArgs    = errors.New("too many arguments")
	errInvalidNumber  = errors.New("invalid number")
)
