package media

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ytget/yt-shorts/internal/logger"
	"github.com/ytget/yt-shorts/internal/platform"
)

// FFmpeg and ffprobe constants
const (
	// Executables
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	// ffprobe arguments
	FFprobeLogLevel       = "error"
	FFprobeVideoStream    = "v:0"
	FFprobeSizeEntries    = "stream=width,height"
	FFprobeSizeFormat     = "csv=p=0:s=x"
	FFprobeDurationEntry  = "format=duration"
	FFprobeDurationFormat = "default=noprint_wrappers=1:nokey=1"
	SizeSeparator         = "x"

	// Encoding settings
	EncodePreset = "ultrafast"
)

// Service probes source containers and cuts vertical fragments
type Service struct {
	runner      platform.Runner
	ffmpegPath  string
	ffprobePath string
	log         *logger.ComponentLogger
}

// NewService creates a media service; empty paths fall back to ffmpeg/ffprobe on PATH
func NewService(runner platform.Runner, ffmpegPath, ffprobePath string) *Service {
	if strings.TrimSpace(ffmpegPath) == "" {
		ffmpegPath = FFmpegCommand
	}
	if strings.TrimSpace(ffprobePath) == "" {
		ffprobePath = FFprobeCommand
	}
	return &Service{
		runner:      runner,
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		log:         logger.WithComponent(logger.ComponentMedia),
	}
}

// ProbeGeometry returns width and height of the first video stream
func (s *Service) ProbeGeometry(ctx context.Context, path string) (int, int, error) {
	out, err := s.runner.Output(ctx, s.ffprobePath, BuildSizeProbeArgs(path)...)
	if err != nil {
		return 0, 0, errors.Wrap(err, "probe resolution")
	}
	width, height, err := ParseSize(string(out))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "probe resolution of %s", path)
	}
	s.log.Debug("Probed resolution", map[string]interface{}{
		"path":   path,
		"width":  width,
		"height": height,
	})
	return width, height, nil
}

// ProbeDuration returns the container duration in seconds
func (s *Service) ProbeDuration(ctx context.Context, path string) (float64, error) {
	out, err := s.runner.Output(ctx, s.ffprobePath, BuildDurationProbeArgs(path)...)
	if err != nil {
		return 0, errors.Wrap(err, "probe duration")
	}
	duration, err := ParseDuration(string(out))
	if err != nil {
		return 0, errors.Wrapf(err, "probe duration of %s", path)
	}
	s.log.Debug("Probed duration", map[string]interface{}{
		"path":     path,
		"duration": duration,
	})
	return duration, nil
}

// Fragment describes one clip to cut from a source
type Fragment struct {
	Input    string
	Output   string
	Start    float64
	Geometry Geometry
}

// Extract encodes one cropped, scaled, silent fragment
func (s *Service) Extract(ctx context.Context, f Fragment) error {
	args := BuildExtractArgs(f)
	s.log.Debug("Running ffmpeg", map[string]interface{}{
		"args": strings.Join(args, " "),
	})
	if err := s.runner.Run(ctx, s.ffmpegPath, args...); err != nil {
		return errors.Wrapf(err, "extract fragment from %ds into %s", StartSeconds(f.Start), f.Output)
	}
	return nil
}

// BuildSizeProbeArgs builds ffprobe arguments printing WIDTHxHEIGHT
func BuildSizeProbeArgs(path string) []string {
	return []string{
		"-v", FFprobeLogLevel,
		"-select_streams", FFprobeVideoStream,
		"-show_entries", FFprobeSizeEntries,
		"-of", FFprobeSizeFormat,
		path,
	}
}

// BuildDurationProbeArgs builds ffprobe arguments printing the bare duration
func BuildDurationProbeArgs(path string) []string {
	return []string{
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeDurationEntry,
		"-of", FFprobeDurationFormat,
		path,
	}
}

// BuildExtractArgs builds the ffmpeg arguments for one fragment:
// seek before the input, 60 seconds, crop+scale, no audio, ultrafast preset.
func BuildExtractArgs(f Fragment) []string {
	return ffmpeg.Input(f.Input, ffmpeg.KwArgs{
		"ss": strconv.Itoa(StartSeconds(f.Start)),
	}).Output(f.Output, ffmpeg.KwArgs{
		"t":      strconv.Itoa(FragmentDuration),
		"vf":     f.Geometry.Filter(),
		"an":     "",
		"preset": EncodePreset,
	}).OverWriteOutput().GetArgs()
}

// ParseSize parses ffprobe "WIDTHxHEIGHT" output
func ParseSize(output string) (int, int, error) {
	line := strings.TrimSpace(output)
	// Some containers report more than one line; the first one is stream v:0.
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	parts := strings.Split(line, SizeSeparator)
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("unexpected resolution output %q", line)
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse width")
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse height")
	}
	return width, height, nil
}

// ParseDuration parses ffprobe's bare duration output
func ParseDuration(output string) (float64, error) {
	s := strings.TrimSpace(output)
	duration, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse duration %q", s)
	}
	if duration < 0 {
		return 0, errors.Errorf("negative duration %v", duration)
	}
	return duration, nil
}
