package alert

import "errors"

var (
	ErrAlertNotFound   = errors.New("alert not found")
	ErrDuplicateAlert  = errors.New("alert with this reference already exists")
	ErrAlreadyResolved = errors.New("alert already resolved")
)
