package services

import "errors"

var (
	ErrEmptyUpload         = errors.New("uploaded file is empty")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("uploaded file is too large")
	ErrNoText              = errors.New("no text could be extracted from the document")
	ErrIndexUnavailable    = errors.New("statute index is not configured")
)
