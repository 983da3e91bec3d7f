package exporter

import (
	"context"
	"encoding/json"
	"fmt"

	"openmusic/internal/mq"
	"openmusic/internal/playlist"
)

// PlaylistLoader is the slice of the playlist store the exporter needs.
type PlaylistLoader interface {
	ListSongs(ctx context.Context, playlistID string) (playlist.PlaylistWithSongs, error)
}

// Exporter turns queued export requests into mailed playlist documents.
type Exporter struct {
	store  PlaylistLoader
	sender EmailSender
}

func New(store PlaylistLoader, sender EmailSender) *Exporter {
	return &Exporter{store: store, sender: sender}
}

// document is the exported JSON shape mailed to the target address.
type document struct {
	Playlist playlist.PlaylistWithSongs `json:"playlist"`
}

// Handle processes one raw export message. Errors are returned to the
// consumer loop, which decides ack vs. requeue.
func (e *Exporter) Handle(ctx context.Context, raw []byte) error {
	var req mq.ExportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("malformed export request: %w", err)
	}
	if req.PlaylistID == "" || req.TargetEmail == "" {
		return fmt.Errorf("export request missing playlistId or targetEmail")
	}

	pl, err := e.store.ListSongs(ctx, req.PlaylistID)
	if err != nil {
		return fmt.Errorf("load playlist %s: %w", req.PlaylistID, err)
	}

	body, err := BuildDocument(pl)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Playlist export: %s", pl.Name)
	if err := e.sender.Send(req.TargetEmail, subject, body); err != nil {
		return fmt.Errorf("send export email: %w", err)
	}
	return nil
}

// BuildDocument renders the exported playlist as indented JSON.
func BuildDocument(pl playlist.PlaylistWithSongs) (string, error) {
	data, err := json.MarshalIndent(document{Playlist: pl}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
