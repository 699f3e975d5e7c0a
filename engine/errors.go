package engine

import "github.com/pkg/errors"

var (
	ErrBadOptions   = errors.New("invalid engine options")
	ErrWorkerFailed = errors.New("search worker failed")
)
