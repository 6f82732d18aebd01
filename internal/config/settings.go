package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ytget/yt-shorts/internal/logger"
)

// ListerKind selects how channel identifiers are enumerated
type ListerKind string

const (
	// ListerCLI shells out to yt-dlp --flat-playlist
	ListerCLI ListerKind = "cli"
	// ListerLibrary fetches playlist items in-process (playlist URLs only)
	ListerLibrary ListerKind = "library"
)

// Environment keys
const (
	KeyWorkDir       = "YTSHORTS_WORKDIR"
	KeyOutputDir     = "YTSHORTS_OUTDIR"
	KeyDelay         = "YTSHORTS_DELAY"
	KeyLister        = "YTSHORTS_LISTER"
	KeyLibraryTitles = "YTSHORTS_LIBRARY_TITLES"
	KeyLogLevel      = "YTSHORTS_LOG_LEVEL"
	KeyLogFormat     = "YTSHORTS_LOG_FORMAT"
	KeyYTDLPPath     = "YTSHORTS_YTDLP"
	KeyFFmpegPath    = "YTSHORTS_FFMPEG"
	KeyFFprobePath   = "YTSHORTS_FFPROBE"
)

// Default values
const (
	DefaultEnvFile       = ".env"
	DefaultWorkDir       = "."
	DefaultOutputDir     = "."
	DefaultDelay         = 5 * time.Second
	DefaultLister        = ListerCLI
	DefaultLibraryTitles = false
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultYTDLPPath     = "yt-dlp"
	DefaultFFmpegPath    = "ffmpeg"
	DefaultFFprobePath   = "ffprobe"
)

// LookupFunc resolves a single configuration key
type LookupFunc func(key string) (string, bool)

// Settings holds the effective run configuration
type Settings struct {
	WorkDir       string
	OutputDir     string
	Delay         time.Duration
	Lister        ListerKind
	LibraryTitles bool
	LogLevel      string
	LogFormat     string
	YTDLPPath     string
	FFmpegPath    string
	FFprobePath   string
}

// DefaultSettings returns settings populated with built-in defaults
func DefaultSettings() *Settings {
	return &Settings{
		WorkDir:       DefaultWorkDir,
		OutputDir:     DefaultOutputDir,
		Delay:         DefaultDelay,
		Lister:        DefaultLister,
		LibraryTitles: DefaultLibraryTitles,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		YTDLPPath:     DefaultYTDLPPath,
		FFmpegPath:    DefaultFFmpegPath,
		FFprobePath:   DefaultFFprobePath,
	}
}

// Load reads defaults, then the optional env file, then the process
// environment. Process variables win over the file.
func Load(envFile string) (*Settings, error) {
	return LoadWith(envFile, os.LookupEnv)
}

// LoadWith is Load with an injectable environment lookup
func LoadWith(envFile string, environ LookupFunc) (*Settings, error) {
	fileValues, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if environ != nil {
			if v, ok := environ(key); ok {
				return v, true
			}
		}
		v, ok := fileValues[key]
		return v, ok
	}

	s := DefaultSettings()
	if err := s.ApplyLookup(lookup); err != nil {
		return nil, err
	}
	return s, nil
}

func readEnvFile(path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]string{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

// ApplyLookup overrides fields for every key the lookup resolves
func (s *Settings) ApplyLookup(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(KeyWorkDir, &s.WorkDir)
	str(KeyOutputDir, &s.OutputDir)
	str(KeyLogLevel, &s.LogLevel)
	str(KeyLogFormat, &s.LogFormat)
	str(KeyYTDLPPath, &s.YTDLPPath)
	str(KeyFFmpegPath, &s.FFmpegPath)
	str(KeyFFprobePath, &s.FFprobePath)

	if v, ok := lookup(KeyLister); ok && strings.TrimSpace(v) != "" {
		s.Lister = ParseLister(v)
	}

	if v, ok := lookup(KeyDelay); ok && strings.TrimSpace(v) != "" {
		d, err := ParseDelay(v)
		if err != nil {
			return fmt.Errorf("%s: %w", KeyDelay, err)
		}
		s.Delay = d
	}

	if v, ok := lookup(KeyLibraryTitles); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", KeyLibraryTitles, err)
		}
		s.LibraryTitles = b
	}

	return nil
}

// ParseDelay accepts a Go duration ("5s", "1m") or a bare number of seconds
func ParseDelay(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q", v)
	}
	return d, nil
}

// Validate checks the settings for values the pipeline cannot run with
func (s *Settings) Validate() error {
	if s.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %s", s.Delay)
	}
	if !s.Lister.Valid() {
		return fmt.Errorf("lister must be one of %s, got %q", ListerUsage(), s.Lister)
	}
	if strings.TrimSpace(s.WorkDir) == "" {
		return errors.New("work directory is empty")
	}
	if strings.TrimSpace(s.OutputDir) == "" {
		return errors.New("output directory is empty")
	}
	for name, bin := range map[string]string{"yt-dlp": s.YTDLPPath, "ffmpeg": s.FFmpegPath, "ffprobe": s.FFprobePath} {
		if strings.TrimSpace(bin) == "" {
			return fmt.Errorf("%s executable path is empty", name)
		}
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if _, err := logger.ParseFormat(s.LogFormat); err != nil {
		return fmt.Errorf("log format: %w", err)
	}
	return nil
}

// ListerOptions returns the supported lister kinds
func ListerOptions() []ListerKind {
	return []ListerKind{ListerCLI, ListerLibrary}
}

// ListerUsage joins the supported lister kinds for help and error text
func ListerUsage() string {
	names := make([]string, 0, len(ListerOptions()))
	for _, k := range ListerOptions() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// ParseLister normalizes a lister name from a flag or the environment
func ParseLister(v string) ListerKind {
	return ListerKind(strings.ToLower(strings.TrimSpace(v)))
}

// Valid reports whether k is a supported lister
func (k ListerKind) Valid() bool {
	for _, opt := range ListerOptions() {
		if k == opt {
			return true
		}
	}
	return false
}
