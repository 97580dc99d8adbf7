package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/monacovault/vaultctl/internal/client/models"
	"github.com/monacovault/vaultctl/internal/client/transport"
)

// UploadRequest describes one file to upload.
type UploadRequest struct {
	FileName        string
	Content         []byte
	Category        string
	IsPublic        bool
	InferenceConfig string // optional stringified config, passed through opaquely
}

// ListUserFiles lists the caller's uploaded files.
func (c *Client) ListUserFiles(ctx context.Context) ([]models.FileMeta, error) {
	var out []models.FileMeta
	if err := c.t.Get(ctx, "/files/metadata/user", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadFile uploads one file as multipart/form-data. onProgress, when non
// nil, receives integer percentages 0-100 as the transfer advances.
func (c *Client) UploadFile(ctx context.Context, req UploadRequest, onProgress func(pct int)) (*models.FileMeta, error) {
	fields := map[string]string{
		"category": req.Category,
		"isPublic": strconv.FormatBool(req.IsPublic),
	}
	if req.InferenceConfig != "" {
		fields["inferenceConfig"] = req.InferenceConfig
	}
	form := transport.UploadForm{
		FieldName: "file",
		FileName:  req.FileName,
		Content:   req.Content,
		Fields:    fields,
	}
	out := &models.FileMeta{}
	if err := c.t.Upload(ctx, "/files/upload", form, out, onProgress); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadBatch uploads files sequentially, one at a time, in list order.
// An empty batch is a no-op: no network calls are made. onProgress, when
// non nil, receives the zero-based index of the file being transferred and
// its progress percentage.
//
// The first failure aborts the batch; already uploaded files stay uploaded.
func (c *Client) UploadBatch(ctx context.Context, reqs []UploadRequest, onProgress func(index, pct int)) ([]*models.FileMeta, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	uploaded := make([]*models.FileMeta, 0, len(reqs))
	for i, req := range reqs {
		var perFile func(int)
		if onProgress != nil {
			idx := i
			perFile = func(pct int) { onProgress(idx, pct) }
		}
		meta, err := c.UploadFile(ctx, req, perFile)
		if err != nil {
			return uploaded, fmt.Errorf("upload %s: %w", req.FileName, err)
		}
		uploaded = append(uploaded, meta)
	}
	return uploaded, nil
}

// DeleteFile removes an uploaded file.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/files/"+url.PathEscape(id), nil)
}

// FileAccessURL requests a time-limited access link for a stored file.
// ttlHours of 0 falls back to DefaultAccessTTLHrs.
func (c *Client) FileAccessURL(ctx context.Context, id string, ttlHours int) (*models.FileAccessURL, error) {
	if ttlHours <= 0 {
		ttlHours = DefaultAccessTTLHrs
	}
	out := &models.FileAccessURL{}
	path := fmt.Sprintf("/files/%s/access-url?ttlHours=%d", url.PathEscape(id), ttlHours)
	if err := c.t.Get(ctx, path, out); err != nil {
		return nil, err
	}
	return out, nil
}
