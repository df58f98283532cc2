package memory

import "errors"

// ErrNotFound запись по ключу отсутствует.
// ErrDuplicateKey запись по ключу уже существует.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
