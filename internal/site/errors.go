package site

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid site configuration")
	ErrTemplateParse    = errors.New("failed to parse templates")
	ErrTemplateNotFound = errors.New("template not found")
	ErrContentLoad      = errors.New("failed to load site content")
	ErrStoreOpen        = errors.New("failed to open submission store")
	ErrNoStore          = errors.New("no submission store configured (set store.path)")
	ErrListSubmissions  = errors.New("failed to list submissions")
)
