// Package failure defines the error taxonomy shared by feed resolution and
// the site list I/O.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies why a resolution (or the I/O around it) failed.
type Kind int

const (
	KindNone Kind = iota
	KindIO
	KindInvalidURL
	KindUnknownSiteType
	KindRSSNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io_error"
	case KindInvalidURL:
		return "invalid_url"
	case KindUnknownSiteType:
		return "unknown_site_type"
	case KindRSSNotFound:
		return "rss_not_found"
	default:
		return "none"
	}
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its kind.
var (
	ErrIO              = &Error{Kind: KindIO}
	ErrInvalidURL      = &Error{Kind: KindInvalidURL}
	ErrUnknownSiteType = &Error{Kind: KindUnknownSiteType}
	ErrRSSNotFound     = &Error{Kind: KindRSSNotFound}
)

// Error is a typed failure. Subject is the offending URL (or a short detail
// message), Err the lower-level cause for KindIO.
type Error struct {
	Kind    Kind
	Subject string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("IO error: %v", e.Err)
	case KindInvalidURL:
		return fmt.Sprintf("Invalid URL: %s", e.Subject)
	case KindUnknownSiteType:
		return fmt.Sprintf("Unknown site type: %s", e.Subject)
	case KindRSSNotFound:
		return fmt.Sprintf("RSS feed not found for: %s", e.Subject)
	default:
		return e.Subject
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func InvalidURL(url string) error {
	return &Error{Kind: KindInvalidURL, Subject: url}
}

func UnknownSiteType(url string) error {
	return &Error{Kind: KindUnknownSiteType, Subject: url}
}

func RSSNotFound(subject string) error {
	return &Error{Kind: KindRSSNotFound, Subject: subject}
}

// IO wraps a transport or file error. A nil err yields nil.
func IO(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindNone.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindNone
}
