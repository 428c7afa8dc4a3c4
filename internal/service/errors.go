package service

import "errors"

var (
	ErrNoOpenSpan   = errors.New("no open activity span")
	ErrInvalidSpan  = errors.New("invalid activity span")
	ErrUnknownAgent = errors.New("unknown agent")
)
