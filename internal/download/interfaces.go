package download

import (
	"context"

	"github.com/ytget/yt-shorts/internal/media"
)

// ChannelLister returns a channel's video identifiers in listing order
type ChannelLister interface {
	ListVideoIDs(ctx context.Context, channelURL string) ([]string, error)
}

// TitleResolver returns a display title for one video
type TitleResolver interface {
	ResolveTitle(ctx context.Context, videoID, videoURL string) (string, error)
}

// VideoFetcher downloads a merged best-quality container to dest
type VideoFetcher interface {
	Download(ctx context.Context, videoURL, dest string) error
}

// MediaProcessor probes a container and cuts fragments from it
type MediaProcessor interface {
	ProbeGeometry(ctx context.Context, path string) (int, int, error)
	ProbeDuration(ctx context.Context, path string) (float64, error)
	Extract(ctx context.Context, f media.Fragment) error
}
