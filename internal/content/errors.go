package content

import "errors"

var (
	ErrContentRead    = errors.New("failed to read content file")
	ErrContentParse   = errors.New("failed to parse content")
	ErrInvalidContent = errors.New("invalid content")
)
