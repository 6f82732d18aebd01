package platform

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrEmptyTitle indicates a title source answered with nothing usable.
	ErrEmptyTitle = errors.New("empty title")
	// ErrNotPlaylistURL indicates the library lister was given a non-playlist URL.
	ErrNotPlaylistURL = errors.New("not a playlist URL")
)

// TitleSource resolves a display title for one video
type TitleSource interface {
	ResolveTitle(ctx context.Context, videoID, videoURL string) (string, error)
}

// TitleChain tries each source in order and returns the first non-empty title
type TitleChain []TitleSource

// ResolveTitle returns the first successful title or all source errors joined
func (c TitleChain) ResolveTitle(ctx context.Context, videoID, videoURL string) (string, error) {
	var errList []error
	for _, src := range c {
		if src == nil {
			continue
		}
		title, err := src.ResolveTitle(ctx, videoID, videoURL)
		if err == nil && strings.TrimSpace(title) != "" {
			return title, nil
		}
		if err == nil {
			err = ErrEmptyTitle
		}
		errList = append(errList, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errList) == 0 {
		return "", ErrEmptyTitle
	}
	return "", errors.Join(errList...)
}
