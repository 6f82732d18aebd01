package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/ytdlp/v2/errs"
	"github.com/ytget/ytdlp/v2/types"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// LibraryClient is the subset of the in-process YouTube client used here.
// *ytdlp.Downloader satisfies it.
type LibraryClient interface {
	GetPlaylistItemsAll(ctx context.Context, playlistID string, limit int) ([]types.PlaylistItem, error)
	ResolveURL(ctx context.Context, videoURL string) (string, *ytdlp.VideoInfo, error)
}

// YTDLPParserService lists playlists and resolves titles without the yt-dlp binary
type YTDLPParserService struct {
	timeout time.Duration
	client  LibraryClient
}

// NewYTDLPParserService creates a library-backed service
func NewYTDLPParserService() *YTDLPParserService {
	return NewYTDLPParserServiceWith(ytdlp.New())
}

// NewYTDLPParserServiceWith creates a service around a custom client
func NewYTDLPParserServiceWith(client LibraryClient) *YTDLPParserService {
	return &YTDLPParserService{
		timeout: DefaultParseTimeout,
		client:  client,
	}
}

// SetTimeout sets the timeout for library calls
func (y *YTDLPParserService) SetTimeout(timeout time.Duration) {
	y.timeout = timeout
}

// ListVideoIDs returns playlist item identifiers in playlist order
func (y *YTDLPParserService) ListVideoIDs(ctx context.Context, url string) ([]string, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := y.withTimeout(ctx)
	defer cancel()

	items, err := y.client.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if id := strings.TrimSpace(it.VideoID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ResolveTitle returns the sanitized title from the video's player response
func (y *YTDLPParserService) ResolveTitle(ctx context.Context, videoID, videoURL string) (string, error) {
	ctx, cancel := y.withTimeout(ctx)
	defer cancel()

	_, info, err := y.client.ResolveURL(ctx, videoURL)
	if err != nil {
		return "", fmt.Errorf("resolve %s (%s): %w", videoID, ClassifyLibraryError(err), err)
	}
	if info == nil {
		return "", fmt.Errorf("resolve %s: %w", videoID, ErrEmptyTitle)
	}
	title := SanitizeTitle(info.Title)
	if title == "" {
		return "", fmt.Errorf("resolve %s: %w", videoID, ErrEmptyTitle)
	}
	return title, nil
}

func (y *YTDLPParserService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if y.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, y.timeout)
}

// IsPlaylistURL checks if the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from watch or playlist URLs
func ExtractPlaylistID(url string) (string, error) {
	if !IsPlaylistURL(url) {
		return "", fmt.Errorf("%w: %s", ErrNotPlaylistURL, url)
	}

	parts := strings.SplitN(url, PlaylistParam, 2)
	playlistID := parts[1]
	if idx := strings.Index(playlistID, ParamSeparator); idx >= 0 {
		playlistID = playlistID[:idx]
	}
	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID in %s", url)
	}
	return playlistID, nil
}

// ClassifyLibraryError maps library sentinel errors to a short reason
func ClassifyLibraryError(err error) string {
	switch {
	case errors.Is(err, errs.ErrPrivate):
		return "private"
	case errors.Is(err, errs.ErrAgeRestricted):
		return "age restricted"
	case errors.Is(err, errs.ErrGeoBlocked):
		return "geo blocked"
	case errors.Is(err, errs.ErrRateLimited):
		return "rate limited"
	case errors.Is(err, errs.ErrVideoUnavailable):
		return "unavailable"
	case errors.Is(err, errs.ErrCipherFailed):
		return "cipher failed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "unknown"
	}
}
