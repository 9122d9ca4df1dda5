package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bitbucket.org/mmdatafocus/stock_planner/spreadsheet"
	"github.com/gin-gonic/gin"
)

const uploadField = "file"

var (
	errUploadMissing  = errors.New("file is required")
	errUploadType     = errors.New("invalid file type: only .xlsx files are allowed")
	errUploadTooLarge = errors.New("file size exceeds upload limit")
)

var uploadMimeTypes = map[string]bool{
	spreadsheet.MimeTypeXlsx:   true,
	"application/octet-stream": true,
	"application/zip":          true,
	"":                         true,
}

// readUpload returns the bytes of the uploaded workbook. Nothing is kept
// after the request.
func readUpload(c *gin.Context, maxBytes int64) ([]byte, error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return nil, errUploadMissing
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		return nil, errUploadType
	}
	if !uploadMimeTypes[header.Header.Get("Content-Type")] {
		return nil, errUploadType
	}
	if header.Size > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", errUploadTooLarge, maxBytes)
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", errUploadTooLarge, maxBytes)
	}
	return data, nil
}
