package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/client/services"
	"github.com/santanu2402/recallai-cli/internal/common"
)

// Upload collects an upload form (or reuses the one retained from a failed
// attempt) and submits it. On failure the form is kept so the user can
// retry without re-entering input; 'cancel' discards it.
func (a *App) Upload(ctx context.Context) error {
	req := a.pending()
	if req != nil {
		printlnFn("Retrying the previous upload. Type 'cancel' to discard it instead.")
	} else {
		var err error
		req, err = a.promptUpload()
		if err != nil {
			return err
		}
		if req == nil {
			return nil
		}
	}

	upload, err := a.uploads.Submit(a.workspaceCtx(), *req)
	if err != nil {
		a.setPending(req)
		reportUploadError(err)
		return nil
	}

	a.setPending(nil)
	a.chat.Reset()
	printlnFn(fmt.Sprintf("Added %s (upload %s). It is now active.", upload.DisplayName, upload.UploadNo))
	return nil
}

// CancelUpload discards the retained upload form.
func (a *App) CancelUpload(ctx context.Context) error {
	if a.pending() == nil {
		printlnFn("Nothing to cancel.")
		return nil
	}
	a.setPending(nil)
	printlnFn("Upload input discarded.")
	return nil
}

// promptUpload walks the user through the upload form. A nil request with a
// nil error means the user backed out by entering nothing.
func (a *App) promptUpload() (*models.UploadRequest, error) {
	kindText, err := getSimpleText(a.reader, "Upload type (pdf / docx / youtube), empty to cancel", os.Stdout)
	if err != nil {
		return nil, err
	}
	if kindText == "" {
		return nil, nil
	}

	kind := models.UploadKind(strings.ToLower(kindText))
	switch kind {
	case models.UploadKindPDF, models.UploadKindDOCX:
		path, err := getSimpleText(a.reader, "Path to the file", os.Stdout)
		if err != nil {
			return nil, err
		}
		return &models.UploadRequest{Kind: kind, FilePath: path}, nil
	case models.UploadKindYouTube:
		url, err := getSimpleText(a.reader, "YouTube URL", os.Stdout)
		if err != nil {
			return nil, err
		}
		return &models.UploadRequest{Kind: kind, URL: url}, nil
	default:
		printlnFn("Unknown upload type:", kindText)
		return nil, nil
	}
}

func reportUploadError(err error) {
	var tooLarge *services.FileTooLargeError
	switch {
	case errors.Is(err, common.ErrUploadLimitReached):
		printlnFn(fmt.Sprintf("Upload limit reached (%d per session).", common.MaxUploads))
	case errors.As(err, &tooLarge):
		printlnFn(capitalize(tooLarge.Error()))
	case errors.Is(err, common.ErrNoFileSelected):
		printlnFn("No file selected.")
	case errors.Is(err, common.ErrNoURLProvided):
		printlnFn("No URL provided.")
	case errors.Is(err, common.ErrNoKindSelected):
		printlnFn("No upload type selected.")
	default:
		printlnFn("Upload failed:", err.Error())
	}
}

// Uploads lists the session's uploads, newest first, marking the active one.
func (a *App) Uploads(ctx context.Context) error {
	uploads, err := a.uploads.List(a.workspaceCtx())
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		printlnFn("No uploads yet. Type 'upload' to add one.")
		return nil
	}

	active, err := a.uploads.Active(a.workspaceCtx())
	activeNo := ""
	if err == nil {
		activeNo = active.UploadNo
	}

	for i, u := range uploads {
		marker := " "
		if u.UploadNo == activeNo {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %d. [%s] %s (%s)", marker, i+1, u.Kind, u.DisplayName,
			u.UploadedAt.Format("3:04:05 PM")))
	}
	return nil
}

// Use selects the upload at the given 1-based list position as the active
// one. Selecting the already active upload leaves the transcript alone.
func (a *App) Use(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		printlnFn("Usage: use <number> (see 'uploads')")
		return nil
	}

	uploads, err := a.uploads.List(a.workspaceCtx())
	if err != nil {
		return err
	}
	if n > len(uploads) {
		printlnFn(fmt.Sprintf("There are only %d uploads.", len(uploads)))
		return nil
	}

	target := uploads[n-1]
	changed, err := a.uploads.SetActive(a.workspaceCtx(), target.UploadNo)
	if err != nil {
		return err
	}
	if !changed {
		printlnFn(fmt.Sprintf("%s is already active.", target.DisplayName))
		return nil
	}

	a.chat.Reset()
	printlnFn(fmt.Sprintf("Now chatting with %s.", target.DisplayName))
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
