package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/monacovault/vaultctl/internal/client/api"
	"github.com/monacovault/vaultctl/internal/client/cache"
	"github.com/monacovault/vaultctl/internal/client/models"
)

// Files lists the caller's uploaded files through the query cache.
func (a *App) Files(ctx context.Context) error {
	files, err := cache.Lookup(ctx, a.cache, cache.KeyUserFiles, func(ctx context.Context) ([]models.FileMeta, error) {
		return a.api.ListUserFiles(ctx)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to list files: %s\n", err.Error())
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files uploaded yet")
		return nil
	}
	for _, f := range files {
		visibility := "private"
		if f.IsPublic {
			visibility = "public"
		}
		fmt.Fprintf(a.out, "%s  %s  %d bytes  %s  %s\n", f.ID, f.FileName, f.SizeInBytes, visibility, f.Category)
	}
	return nil
}

// Upload reads a space-separated list of paths and uploads them
// sequentially, one at a time, in the order given, reporting per-file
// progress. An empty list is a no-op.
func (a *App) Upload(ctx context.Context) error {
	pathsLine, err := getSimpleText(a.reader, "Enter file paths (space separated)", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Enter category", a.out)
	if err != nil {
		return err
	}
	publicAnswer, err := getSimpleText(a.reader, "Public? (y/N)", a.out)
	if err != nil {
		return err
	}
	isPublic := strings.EqualFold(publicAnswer, "y") || strings.EqualFold(publicAnswer, "yes")

	paths := strings.Fields(pathsLine)
	if len(paths) == 0 {
		fmt.Fprintln(a.out, "Nothing to upload")
		return nil
	}
	reqs := make([]api.UploadRequest, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.out, "Cannot read %s: %s\n", path, err.Error())
			return err
		}
		reqs = append(reqs, api.UploadRequest{
			FileName: filepath.Base(path),
			Content:  content,
			Category: category,
			IsPublic: isPublic,
		})
	}

	// Files that uploaded before a mid-batch failure must not upload again
	// on the automatic retry, so each attempt resumes from the first
	// unfinished file.
	remaining := reqs
	err = a.cache.Mutate(ctx, cache.OpFileUpload, func(ctx context.Context) error {
		batch := remaining
		uploaded, err := a.api.UploadBatch(ctx, batch, func(index, pct int) {
			fmt.Fprintf(a.out, "\r%s: %d%%", batch[index].FileName, pct)
			if pct == 100 {
				fmt.Fprintln(a.out)
			}
		})
		remaining = remaining[len(uploaded):]
		return err
	})
	if err != nil {
		fmt.Fprintf(a.out, "Upload failed: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %d file(s)\n", len(reqs))
	return nil
}

// RemoveFile deletes a file after explicit confirmation.
func (a *App) RemoveFile(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter file id", a.out)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, "Delete file "+id+"?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	err = a.cache.Mutate(ctx, cache.OpFileDelete, func(ctx context.Context) error {
		return a.api.DeleteFile(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to delete file: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "File deleted")
	return nil
}

// FileURL requests a time-limited access link for a file.
func (a *App) FileURL(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter file id", a.out)
	if err != nil {
		return err
	}
	access, err := a.api.FileAccessURL(ctx, id, api.DefaultAccessTTLHrs)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to get access URL: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "%s (expires %s)\n", access.URL, access.ExpiresAt)
	return nil
}
