package history

import "errors"

var (
	ErrRecordEdit = errors.New("record edit")
	ErrListEdits  = errors.New("list edits")
)
