package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/rickgao/notepad-sync/internal/model"
)

// GetNote fetches a note by document id.
func (c *Client) GetNote(ctx context.Context, docID string) (*model.Note, error) {
	var note model.Note
	if err := c.get(ctx, notePath(docID), nil, &note); err != nil {
		return nil, fmt.Errorf("get note %s: %w", docID, err)
	}
	return &note, nil
}

// FetchNote fetches a note with a single request. Used by polling, where
// the next tick is the retry.
func (c *Client) FetchNote(ctx context.Context, docID string) (*model.Note, error) {
	var note model.Note
	if err := c.getOnce(ctx, notePath(docID), nil, &note); err != nil {
		return nil, fmt.Errorf("fetch note %s: %w", docID, err)
	}
	return &note, nil
}

// SaveNote persists content for a document id. Any 2xx response counts as
// saved; when the body is not a note, the returned note carries only the
// content that was sent.
func (c *Client) SaveNote(ctx context.Context, docID, content string) (*model.Note, error) {
	var note model.Note
	err := c.post(ctx, notePath(docID), model.SaveRequest{Content: content}, &note)
	switch {
	case errors.Is(err, ErrUnexpectedBody):
		c.logger.Debug("save accepted with non-note body", "doc", docID, "error", err)
		return &model.Note{
			Content: content,
			Size:    utf8.RuneCountInString(content),
		}, nil
	case err != nil:
		return nil, fmt.Errorf("save note %s: %w", docID, err)
	}
	return &note, nil
}

func notePath(docID string) string {
	return "/notes/" + url.PathEscape(docID)
}
