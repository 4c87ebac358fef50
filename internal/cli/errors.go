package cli

import "errors"

var (
	ErrParseFlags     = errors.New("failed to parse flags")
	ErrLoadConfig     = errors.New("failed to load config")
	ErrUnknownCommand = errors.New("unknown command")

	ErrUnsupportedCommand = errors.New("command not supported by this binary")
)
