package export

import "errors"

var (
	ErrUnknownTable  = errors.New("unknown export table")
	ErrUnknownFormat = errors.New("unknown export format, expected md, csv or xlsx")
)
