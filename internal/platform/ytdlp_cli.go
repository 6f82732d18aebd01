package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-shorts/internal/logger"
)

// yt-dlp executable and format selection
const (
	YTDLPCommand         = "yt-dlp"
	BestVideoAudioFormat = "bestvideo+bestaudio"
	MergeContainer       = "mp4"
)

// Download progress reporting
const (
	ProgressInterval = 2 * time.Second
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// titleReplacer maps path-unsafe title characters to "-"
var titleReplacer = strings.NewReplacer("/", "-", ":", "-")

// commandFunc executes a configured yt-dlp command against args
type commandFunc func(ctx context.Context, cmd *ytdlp.Command, args ...string) (*ytdlp.Result, error)

func runCommand(ctx context.Context, cmd *ytdlp.Command, args ...string) (*ytdlp.Result, error) {
	return cmd.Run(ctx, args...)
}

// YTDLPService drives the yt-dlp command line tool
type YTDLPService struct {
	executable string
	run        commandFunc
	log        *logger.ComponentLogger
}

// NewYTDLPService creates a yt-dlp wrapper; an empty executable means "yt-dlp" on PATH
func NewYTDLPService(executable string) *YTDLPService {
	if strings.TrimSpace(executable) == "" {
		executable = YTDLPCommand
	}
	return &YTDLPService{
		executable: executable,
		run:        runCommand,
		log:        logger.WithComponent(logger.ComponentDownload),
	}
}

// ListVideoIDs returns the channel's video identifiers in listing order
func (y *YTDLPService) ListVideoIDs(ctx context.Context, channelURL string) ([]string, error) {
	result, err := y.run(ctx, y.ListCommand(), channelURL)
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", y.commandError(channelURL, result, err))
	}
	return ParseIDLines(result.Stdout), nil
}

// ResolveTitle returns the sanitized title reported by yt-dlp
func (y *YTDLPService) ResolveTitle(ctx context.Context, videoID, videoURL string) (string, error) {
	result, err := y.run(ctx, y.TitleCommand(), videoURL)
	if err != nil {
		return "", fmt.Errorf("get title for %s: %w", videoID, y.commandError(videoURL, result, err))
	}
	title := SanitizeTitle(result.Stdout)
	if title == "" {
		return "", fmt.Errorf("get title for %s: %w", videoID, ErrEmptyTitle)
	}
	return title, nil
}

// Download fetches best video+audio merged into an mp4 container at dest
func (y *YTDLPService) Download(ctx context.Context, videoURL, dest string) error {
	dl := y.DownloadCommand(dest)
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes <= 0 {
			return
		}
		y.log.Debug("Download progress", map[string]interface{}{
			"url":     videoURL,
			"percent": int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100),
		})
	})

	result, err := y.run(ctx, dl, videoURL)
	if err != nil {
		return fmt.Errorf("download %s: %w", videoURL, y.commandError(videoURL, result, err))
	}
	return nil
}

// ListCommand configures the flat identifier listing
func (y *YTDLPService) ListCommand() *ytdlp.Command {
	return y.command().
		FlatPlaylist().
		GetID()
}

// TitleCommand configures the title lookup
func (y *YTDLPService) TitleCommand() *ytdlp.Command {
	return y.command().
		GetTitle()
}

// DownloadCommand configures the merged best video+audio download into dest
func (y *YTDLPService) DownloadCommand(dest string) *ytdlp.Command {
	return y.command().
		Format(BestVideoAudioFormat).
		MergeOutputFormat(MergeContainer).
		Output(dest)
}

func (y *YTDLPService) command() *ytdlp.Command {
	return ytdlp.New().SetExecutable(y.executable)
}

// commandError keeps the exit code and stderr tail of a failed invocation
func (y *YTDLPService) commandError(target string, result *ytdlp.Result, err error) *CommandError {
	ce := &CommandError{
		Name:     YTDLPCommand,
		Args:     []string{target},
		ExitCode: -1,
		Err:      err,
	}
	if result != nil {
		if result.ExitCode != 0 {
			ce.ExitCode = result.ExitCode
		}
		ce.Stderr = tailText([]byte(result.Stderr), MaxStderrBytes)
		if len(result.Args) > 0 {
			ce.Args = append([]string(nil), result.Args...)
		}
	}
	return ce
}

// VideoURL builds the watch URL for an identifier
func VideoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, videoID)
}

// ParseIDLines splits listing output into identifiers, dropping blank lines
func ParseIDLines(output string) []string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	return ids
}

// SanitizeTitle trims a title and replaces "/" and ":" with "-"
func SanitizeTitle(title string) string {
	return titleReplacer.Replace(strings.TrimSpace(title))
}
