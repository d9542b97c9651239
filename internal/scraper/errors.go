package scraper

import (
	"errors"
	"fmt"
)

// Kind classifies a department failure.
type Kind string

const (
	KindFetch   Kind = "fetch"
	KindParse   Kind = "parse"
	KindPersist Kind = "persist"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrFetch   = errors.New("fetch failed")
	ErrParse   = errors.New("parse failed")
	ErrPersist = errors.New("persist failed")
)

// Error is a hard failure of one department's scrape.
type Error struct {
	Kind       Kind
	Department string
	URL        string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Department, e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrFetch:
		return e.Kind == KindFetch
	case ErrParse:
		return e.Kind == KindParse
	case ErrPersist:
		return e.Kind == KindPersist
	}
	return false
}
