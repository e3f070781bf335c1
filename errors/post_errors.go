// errors/post_errors.go
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound    = fmt.Errorf("post %w", ErrNotFound)
	ErrInvalidPostData = errors.New("invalid post data")
	ErrInternalServer  = errors.New("internal server error")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidIDList   = errors.New("invalid id list")
)
