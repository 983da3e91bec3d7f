package playlist

import (
	"context"
	"errors"
)

// verifyOwner succeeds silently when userID owns the playlist. A missing
// playlist is ErrPlaylistNotFound; anyone else is ErrForbidden.
func (s *Server) verifyOwner(ctx context.Context, playlistID, userID string) error {
	pl, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if pl.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

// verifyAccess grants the owner or any registered collaborator. The owner
// check runs first because it is the cheaper query; only an ownership
// failure falls through to the collaboration lookup. A nonexistent playlist
// reports ErrPlaylistNotFound regardless of who is asking.
func (s *Server) verifyAccess(ctx context.Context, playlistID, userID string) error {
	err := s.verifyOwner(ctx, playlistID, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrForbidden) {
		return err
	}

	ok, err := s.store.IsCollaborator(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
