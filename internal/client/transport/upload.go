package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadForm describes one multipart/form-data upload.
type UploadForm struct {
	// FieldName is the multipart field carrying the file, usually "file".
	FieldName string
	FileName  string
	Content   []byte
	// Fields are additional plain form values, e.g. category or isPublic.
	Fields map[string]string
}

// Upload posts the form to path and reports transfer progress through
// onProgress with integer percentages from 0 to 100, never decreasing.
// When the total payload size cannot be determined, progress callbacks are
// skipped entirely rather than risking a division by zero.
func (c *Client) Upload(ctx context.Context, path string, form UploadForm, out any, onProgress func(pct int)) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range form.Fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	fieldName := form.FieldName
	if fieldName == "" {
		fieldName = "file"
	}
	part, err := writer.CreateFormFile(fieldName, form.FileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(form.Content); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	total := int64(buf.Len())
	var body io.Reader = &buf
	if onProgress != nil && total > 0 {
		body = &progressReader{r: &buf, total: total, onProgress: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	return c.execute(req, http.MethodPost, path, out)
}

// progressReader reports the percentage of bytes consumed from the wrapped
// reader. Reported values are monotonically non-decreasing.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(pct int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.onProgress(pct)
		}
	}
	return n, err
}
