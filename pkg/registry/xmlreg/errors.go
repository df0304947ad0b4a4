package xmlreg

import "errors"

var (
	ErrReadDocument  = errors.New("read registry document")
	ErrParseDocument = errors.New("parse registry document")
)
