package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/ytget/yt-shorts/internal/config"
	"github.com/ytget/yt-shorts/internal/download"
	"github.com/ytget/yt-shorts/internal/logger"
	"github.com/ytget/yt-shorts/internal/media"
	"github.com/ytget/yt-shorts/internal/platform"
	"github.com/ytget/yt-shorts/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("yt-shorts", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagEnv           string
		flagWorkDir       string
		flagOutDir        string
		flagDelay         string
		flagLister        string
		flagLibraryTitles bool
		flagLogLevel      string
		flagLogFormat     string
		flagYTDLP         string
		flagFFmpeg        string
		flagFFprobe       string
		flagVersion       bool
	)

	fs.StringVar(&flagEnv, "env", config.DefaultEnvFile, "Env file with YTSHORTS_* settings (missing file is ignored)")
	fs.StringVar(&flagWorkDir, "workdir", config.DefaultWorkDir, "Directory for temporary downloads")
	fs.StringVar(&flagOutDir, "outdir", config.DefaultOutputDir, "Directory for generated fragments")
	fs.StringVar(&flagDelay, "delay", config.DefaultDelay.String(), "Pause between videos (e.g. 5s, 1m, or bare seconds; 0 disables)")
	fs.StringVar(&flagLister, "lister", string(config.DefaultLister), "Channel lister: "+config.ListerUsage()+" (library takes playlist URLs only)")
	fs.BoolVar(&flagLibraryTitles, "library-titles", config.DefaultLibraryTitles, "Fall back to the in-process client when yt-dlp gives no title")
	fs.StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&flagLogFormat, "log-format", config.DefaultLogFormat, "Log format: text, json, color")
	fs.StringVar(&flagYTDLP, "ytdlp", config.DefaultYTDLPPath, "yt-dlp executable")
	fs.StringVar(&flagFFmpeg, "ffmpeg", config.DefaultFFmpegPath, "ffmpeg executable")
	fs.StringVar(&flagFFprobe, "ffprobe", config.DefaultFFprobePath, "ffprobe executable")
	fs.BoolVar(&flagVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: yt-shorts [flags] <channel_url>\n")
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if flagVersion {
		fmt.Fprintf(stdout, "yt-shorts %s\n", version)
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	channelURL := strings.TrimSpace(fs.Arg(0))

	settings, err := config.Load(flagEnv)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load settings: %v\n", err)
		return 1
	}

	// Flags given on the command line override env and file values.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workdir":
			settings.WorkDir = flagWorkDir
		case "outdir":
			settings.OutputDir = flagOutDir
		case "delay":
			d, err := config.ParseDelay(flagDelay)
			if err != nil {
				flagErr = errors.Join(flagErr, fmt.Errorf("-delay: %w", err))
				return
			}
			settings.Delay = d
		case "lister":
			settings.Lister = config.ParseLister(flagLister)
		case "library-titles":
			settings.LibraryTitles = flagLibraryTitles
		case "log-level":
			settings.LogLevel = flagLogLevel
		case "log-format":
			settings.LogFormat = flagLogFormat
		case "ytdlp":
			settings.YTDLPPath = flagYTDLP
		case "ffmpeg":
			settings.FFmpegPath = flagFFmpeg
		case "ffprobe":
			settings.FFprobePath = flagFFprobe
		}
	})
	if flagErr == nil {
		flagErr = settings.Validate()
	}
	if flagErr != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", flagErr)
		return 1
	}

	log, err := logger.NewFromStrings(settings.LogLevel, settings.LogFormat, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	logger.SetGlobalLogger(log)
	appLog := logger.WithComponent(logger.ComponentApp)

	runID := newRunID()
	appLog.Info("Starting run", map[string]interface{}{
		"run_id":  runID,
		"version": version,
		"url":     channelURL,
		"lister":  string(settings.Lister),
		"delay":   settings.Delay.String(),
		"workdir": settings.WorkDir,
		"outdir":  settings.OutputDir,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := platform.NewExecRunner("", stdout, stderr)
	ytdlpService := platform.NewYTDLPService(settings.YTDLPPath)

	var library *platform.YTDLPParserService
	if settings.Lister == config.ListerLibrary || settings.LibraryTitles {
		library = platform.NewYTDLPParserService()
	}

	var lister download.ChannelLister = ytdlpService
	if settings.Lister == config.ListerLibrary {
		lister = library
	}

	titles := platform.TitleChain{ytdlpService}
	if settings.LibraryTitles {
		titles = append(titles, library)
	}

	service := download.NewService(
		lister,
		titles,
		ytdlpService,
		media.NewService(runner, settings.FFmpegPath, settings.FFprobePath),
		download.Options{
			RunID:     runID,
			WorkDir:   settings.WorkDir,
			OutputDir: settings.OutputDir,
			Delay:     settings.Delay,
		},
	)

	console := ui.NewConsole(stdout)
	service.SetUpdateCallback(console.HandleUpdate)

	channel, err := service.ListChannel(ctx, channelURL)
	if err != nil {
		ui.NewConsole(stderr).PrintListingError(err)
		return 1
	}
	console.PrintHeader(channel)

	summary := service.Run(ctx, channel)
	console.PrintSummary(summary)

	fields := map[string]interface{}{
		"run_id":    runID,
		"total":     summary.Total,
		"completed": summary.Completed,
		"failed":    summary.Failed,
	}
	if summary.HasFailures() {
		appLog.Warn("Done with failed videos", fields)
	} else {
		appLog.Info("Done", fields)
	}
	return 0
}

// newRunID returns a time-ordered run ID
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
