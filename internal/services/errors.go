package services

import "errors"

var (
	ErrUnknown           = errors.New("[service]: unknown error")
	ErrRecordNotFound    = errors.New("[service]: record not found")
	ErrExhaustedKeyspace = errors.New("[service]: exhausted keyspace")
)
