package expense

import "errors"

var (
	ErrExpenseNotFound         = errors.New("expense not found")
	ErrInvalidStatusTransition = errors.New("expense already reviewed")
	ErrUnknownEmployee         = errors.New("employee does not exist")
	ErrUnknownCategory         = errors.New("category does not exist")
)
