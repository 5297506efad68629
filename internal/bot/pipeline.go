package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avoronov/webdump-bot/internal/domain"
	"github.com/avoronov/webdump-bot/internal/extract"
	"github.com/avoronov/webdump-bot/internal/notion"
)

// User-facing pipeline replies.
const (
	MsgGenericFailure = "Something went wrong, could not save your message."
)

// handleMessage runs the capture pipeline for a credentialed chat: resolve
// attachments, try the image upload, extract text fields, validate the target
// database, and create the page.
func (r *Router) handleMessage(ctx context.Context, cred *domain.Credential, msg Incoming) {
	// Caption is appended with no separator. Long-standing behavior; callers
	// rely on single-message photos with captions titling pages this way.
	elements := extract.Parse(msg.Text + msg.Caption)

	imageURL := r.uploadFirst(ctx, msg)

	api := r.notionFor(cred.IntegrationToken)

	db, err := api.DatabaseByID(ctx, cred.DatabaseID)
	if err != nil {
		slog.Error("database lookup failed", "chat_id", msg.ChatID, "error", err)
		r.send(msg.ChatID, MsgGenericFailure)
		return
	}

	if !notion.HasRequiredProperties(db) {
		found := strings.Join(notion.PropertyNames(db), ", ")
		r.send(msg.ChatID, fmt.Sprintf(
			"Could not create page in Notion: database does not have all required fields: Name, Image, URL, Tags, found: %s", found))
		return
	}

	page, err := api.CreatePage(ctx, &notion.NewPage{
		Database: db,
		Title:    elements.Title,
		URL:      elements.URL,
		ImageURL: imageURL,
		Tags:     elements.Tags,
	})
	if err != nil {
		slog.Error("page creation failed", "chat_id", msg.ChatID, "error", err)
		r.send(msg.ChatID, MsgGenericFailure)
		return
	}

	reply := "Created page " + notion.PageURL(page)
	if err := r.sender.Reply(msg.ChatID, msg.MessageID, reply); err != nil {
		slog.Error("send failed", "chat_id", msg.ChatID, "error", err)
	}
}

// uploadFirst uploads attachment candidates in priority order and returns the
// public URL of the first success, or empty when there is nothing to upload or
// every upload fails. Upload failure is soft: the page is created without an
// image.
func (r *Router) uploadFirst(ctx context.Context, msg Incoming) string {
	for _, fileID := range attachmentCandidates(msg) {
		sourceURL, err := r.files.FileURL(fileID)
		if err != nil {
			slog.Warn("file resolve failed", "chat_id", msg.ChatID, "file_id", fileID, "error", err)
			continue
		}
		publicURL, err := r.uploader.Upload(ctx, sourceURL)
		if err != nil {
			slog.Warn("image upload failed", "chat_id", msg.ChatID, "file_id", fileID, "error", err)
			continue
		}
		return publicURL
	}
	return ""
}
