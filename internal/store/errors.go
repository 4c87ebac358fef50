package store

import "errors"

var (
	ErrOpen      = errors.New("failed to open submission store")
	ErrSchema    = errors.New("failed to create submission schema")
	ErrInsert    = errors.New("failed to record submission")
	ErrQuery     = errors.New("failed to query submissions")
	ErrMissingID = errors.New("submission has no id")
)
