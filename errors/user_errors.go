// errors/user_errors.go
package errors

import "fmt"

var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
)
