package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize caps every uploaded file.
const MaxUploadSize = 10 * 1024 * 1024

const (
	MimePDF  = "application/pdf"
	MimePPT  = "application/vnd.ms-powerpoint"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Upload categories double as key prefixes in the bucket.
const (
	CategoryMainsExams       = "mains-exams"
	CategoryMainsAttempts    = "mains-attempts"
	CategoryMainsEvaluations = "mains-evaluations"
)

// Policy is a MIME allowlist plus the message shown when it is violated.
type Policy struct {
	Allowed []string
	Message string
}

var (
	PDFOnly           = Policy{Allowed: []string{MimePDF}, Message: "Only PDF files are allowed"}
	PDFOrPresentation = Policy{Allowed: []string{MimePDF, MimePPT, MimePPTX}, Message: "Only PDF and PPT files are allowed"}
)

func (p Policy) allows(mimeType string) bool {
	for _, allowed := range p.Allowed {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// ErrNoFile means the request carried no file part.
var ErrNoFile = errors.New("no file uploaded")

// UploadError is a rejected upload; it maps to 400.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return e.Reason
}

// File is a validated upload held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ValidateUpload enforces the size ceiling and the policy, then sniffs the
// content to make sure it really is the declared type.
func ValidateUpload(header *multipart.FileHeader, policy Policy) (*File, error) {
	if header == nil {
		return nil, ErrNoFile
	}
	if header.Size > MaxUploadSize {
		return nil, &UploadError{Reason: fmt.Sprintf("File too large: limit is %d MB", MaxUploadSize/(1024*1024))}
	}

	declared := declaredType(header)
	if !policy.allows(declared) {
		return nil, &UploadError{Reason: policy.Message}
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, &UploadError{Reason: fmt.Sprintf("File too large: limit is %d MB", MaxUploadSize/(1024*1024))}
	}
	if len(data) == 0 {
		return nil, &UploadError{Reason: "File is empty"}
	}

	if !matchesContent(data, declared) {
		return nil, &UploadError{Reason: policy.Message}
	}

	return &File{Name: filepath.Base(header.Filename), ContentType: declared, Data: data}, nil
}

func declaredType(header *multipart.FileHeader) string {
	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

func matchesContent(data []byte, declared string) bool {
	for detected := mimetype.Detect(data); detected != nil; detected = detected.Parent() {
		if detected.Is(declared) {
			return true
		}
	}
	return false
}

// Uploader stores files and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, category, filename, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, url string) error
}
