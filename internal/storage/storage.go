package storage

import (
	"io"
	"mime/multipart"
)

type FileInfo struct {
	Filename    string
	ContentType string
	Size        int64
}

// Storage persists uploaded videos until the pipeline has processed them.
type Storage interface {
	SaveFile(file multipart.File, info FileInfo) (string, error)
	OpenFile(path string) (io.ReadSeekCloser, error)
	DeleteFile(path string) error
	FilePath(name string) string
}
