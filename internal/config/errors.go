package config

import "errors"

// Configuration errors. Call sites wrap them with the offending path.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrNegativeThreshold  = errors.New("hole_threshold cannot be negative")
	ErrNegativeCapacity   = errors.New("capacity cannot be negative")
)
