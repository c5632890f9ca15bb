package store

import "github.com/lib/pq"

const (
	DuplicateEntry pq.ErrorCode = "23505"
	EntryTooLong   pq.ErrorCode = "22001"
	ForeignKeyGone pq.ErrorCode = "23503"
)
