package domain

import "errors"

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrRegisterFailed   = errors.New("member registration failed")
	ErrPersistFailed    = errors.New("record persistence failed")
	ErrMemberLookup     = errors.New("member lookup failed")
	ErrEmptyCatalog     = errors.New("question catalog is empty")
	ErrUnknownBackend   = errors.New("unknown storage backend")
	ErrSheetTitleExists = errors.New("sheet title already exists")
)
