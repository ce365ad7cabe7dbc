package projectr

import "errors"

var (
	ErrNotFound     = errors.New("projectr: not found")
	ErrEmptyArchive = errors.New("projectr: archive contains no file blocks")
	ErrExists       = errors.New("projectr: file already exists")
	ErrValidation   = errors.New("projectr: validation failed")
)
