package logger

import "errors"

// TaggedError carries the logger tag under which the error is reported at
// the CLI boundary.
type TaggedError struct {
	tag string
	err error
}

func (e *TaggedError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *TaggedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Tag returns the associated logger tag.
func (e *TaggedError) Tag() string {
	if e == nil {
		return ""
	}
	return e.tag
}

// WithTag wraps err with a logger tag. If err is nil, nil is returned.
func WithTag(tag string, err error) error {
	if err == nil {
		return nil
	}
	return &TaggedError{tag: tag, err: err}
}

// ErrorTag extracts the outermost logger tag from an error chain.
func ErrorTag(err error) string {
	var tagged *TaggedError
	if errors.As(err, &tagged) && tagged != nil {
		return tagged.Tag()
	}
	return ""
}

// ErrorTagOr is ErrorTag with a fallback for untagged errors.
func ErrorTagOr(err error, fallback string) string {
	if tag := ErrorTag(err); tag != "" {
		return tag
	}
	return fallback
}
