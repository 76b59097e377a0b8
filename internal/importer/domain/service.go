package domain

import (
	"context"
	"errors"
	"io"
)

type Service interface {
	ImportExcel(ctx context.Context, req ImportRequest) (*ImportResult, error)
	ExportCSV(ctx context.Context, station string) (*ExportResult, error)
}

// ImportRequest carries an uploaded .xlsx workbook. Every imported row lands
// in TargetStation unless the sheet carries its own valid station column.
type ImportRequest struct {
	TargetStation string
	File          io.Reader
}

type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type ExportResult struct {
	Filename string
	Content  []byte
}

var (
	ErrInvalidStation = errors.New("invalid_station")
	ErrEmptyFile      = errors.New("empty_file")
	ErrUnreadableFile = errors.New("unreadable_file")
)
