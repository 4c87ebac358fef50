package sshserver

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid ssh configuration")
	ErrNoContent     = errors.New("no portfolio content")
	ErrHostKey       = errors.New("failed to locate host key")
	ErrNewServer     = errors.New("failed to create ssh server")
	ErrListen        = errors.New("failed to listen")
	ErrServe         = errors.New("ssh server failed")
	ErrShutdown      = errors.New("ssh server shutdown failed")
)
