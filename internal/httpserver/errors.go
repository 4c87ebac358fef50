package httpserver

import "errors"

var (
	ErrListen   = errors.New("failed to listen")
	ErrServe    = errors.New("server failed")
	ErrShutdown = errors.New("server shutdown failed")
)
