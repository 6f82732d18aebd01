package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ytget/yt-shorts/internal/logger"
	"github.com/ytget/yt-shorts/internal/media"
	"github.com/ytget/yt-shorts/internal/model"
	"github.com/ytget/yt-shorts/internal/platform"
)

// Options configures a Service
type Options struct {
	RunID     string
	WorkDir   string
	OutputDir string
	Delay     time.Duration
}

// Service lists a channel and turns each video into vertical fragments
type Service struct {
	lister  ChannelLister
	titles  TitleResolver
	fetcher VideoFetcher
	media   MediaProcessor

	runID     string
	workDir   string
	outputDir string
	pacer     *Pacer
	now       func() time.Time

	tasksMutex sync.Mutex
	onUpdate   func(*model.VideoTask) // callback for console updates

	log        *logger.ComponentLogger
	channelLog *logger.ComponentLogger
}

// NewService creates a new channel processing service
func NewService(lister ChannelLister, titles TitleResolver, fetcher VideoFetcher, processor MediaProcessor, opts Options) *Service {
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &Service{
		lister:     lister,
		titles:     titles,
		fetcher:    fetcher,
		media:      processor,
		runID:      opts.RunID,
		workDir:    opts.WorkDir,
		outputDir:  opts.OutputDir,
		pacer:      NewPacer(opts.Delay),
		now:        time.Now,
		log:        logger.WithComponent(logger.ComponentDownload),
		channelLog: logger.WithComponent(logger.ComponentChannel),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.VideoTask)) {
	s.onUpdate = callback
}

// ListChannel fetches the channel's identifiers and registers a pending task for each.
// The returned channel is non-nil even on error and carries the failure.
func (s *Service) ListChannel(ctx context.Context, channelURL string) (*model.Channel, error) {
	channel := model.NewChannel(channelURL, s.runID)

	s.channelLog.Info("Listing channel videos", map[string]interface{}{
		"url":    channelURL,
		"run_id": s.runID,
	})

	ids, err := s.lister.ListVideoIDs(ctx, channelURL)
	if err != nil {
		channel.Error = err.Error()
		channel.UpdateStatus(model.ChannelStatusError)
		s.channelLog.Error("Failed to list channel videos", map[string]interface{}{
			"url":   channelURL,
			"error": err,
		})
		return channel, err
	}

	for _, id := range ids {
		channel.AddVideo(id, platform.VideoURL(id))
	}

	channel.UpdateStatus(model.ChannelStatusReady)
	s.channelLog.Info("Found videos", map[string]interface{}{
		"url":   channelURL,
		"count": channel.Len(),
	})
	return channel, nil
}

// Run processes every listed video in order. A failing video is logged and
// skipped; cancellation of ctx ends the run after the current video.
func (s *Service) Run(ctx context.Context, channel *model.Channel) *model.RunSummary {
	summary := model.NewRunSummary(channel.RunID, channel.URL)
	channel.UpdateStatus(model.ChannelStatusProcessing)

	total := channel.Len()
	s.log.Info("Processing channel", map[string]interface{}{
		"run_id": channel.RunID,
		"total":  total,
		"delay":  s.pacer.Delay().String(),
	})

	for _, task := range channel.Tasks {
		if err := s.pacer.Wait(ctx); err != nil {
			s.log.Warn("Run cancelled before video", map[string]interface{}{
				"video_id": task.VideoID,
				"index":    task.Index,
				"error":    err,
			})
			break
		}

		s.log.Info("Processing video", map[string]interface{}{
			"video_id": task.VideoID,
			"index":    task.Index,
			"total":    total,
		})

		if err := s.ProcessVideo(ctx, task); err != nil {
			s.log.Error("Failed to process video", map[string]interface{}{
				"video_id": task.VideoID,
				"index":    task.Index,
				"error":    err,
			})
		}
		s.pacer.Mark()

		if ctx.Err() != nil {
			break
		}
	}

	for _, task := range channel.Tasks {
		summary.Record(task)
	}
	summary.Finalize()

	if ctx.Err() != nil {
		channel.UpdateStatus(model.ChannelStatusStopped)
	} else {
		channel.UpdateStatus(model.ChannelStatusCompleted)
	}

	s.log.Info("Run finished", map[string]interface{}{
		"run_id":    summary.RunID,
		"total":     summary.Total,
		"completed": summary.Completed,
		"failed":    summary.Failed,
		"stopped":   summary.Stopped,
		"fragments": summary.Fragments,
	})
	return summary
}

// ProcessVideo resolves the title, downloads the source, probes it and cuts
// the four fragments. The temporary source is removed on every return path.
func (s *Service) ProcessVideo(ctx context.Context, task *model.VideoTask) (err error) {
	if task.Status.IsActive() {
		return fmt.Errorf("video %s is already %s", task.VideoID, strings.ToLower(task.Status.String()))
	}

	s.tasksMutex.Lock()
	task.StartedAt = s.now()
	task.FinishedAt = time.Time{}
	task.LastError = ""
	task.Fragments = nil
	s.tasksMutex.Unlock()

	defer func() {
		s.finishTask(ctx, task, err)
	}()

	task.Title = s.resolveTitle(ctx, task)
	task.Epoch = s.now().Unix()

	tmp, err := platform.AcquireTempSource(s.workDir, task.VideoID)
	if err != nil {
		return fmt.Errorf("acquire temp source: %w", err)
	}
	defer func() {
		if rerr := tmp.Release(); rerr != nil {
			s.log.Warn("Failed to remove temp source", map[string]interface{}{
				"video_id": task.VideoID,
				"path":     tmp.Path(),
				"error":    rerr,
			})
		}
	}()
	task.SourcePath = tmp.Path()

	s.setStatus(task, model.TaskStatusDownloading)
	s.log.Info("Downloading", map[string]interface{}{
		"video_id": task.VideoID,
		"title":    task.Title,
	})
	if err := s.fetcher.Download(ctx, task.URL, tmp.Path()); err != nil {
		return err
	}

	s.setStatus(task, model.TaskStatusProbing)
	width, height, err := s.media.ProbeGeometry(ctx, tmp.Path())
	if err != nil {
		return err
	}
	geometry, err := media.ComputeGeometry(width, height)
	if err != nil {
		return err
	}
	if geometry.Empty() {
		return fmt.Errorf("source %dx%d is too small to crop", width, height)
	}

	duration, err := s.media.ProbeDuration(ctx, tmp.Path())
	if err != nil {
		return err
	}
	points := media.ClipPoints(duration)
	if !media.IsMonotonic(points) {
		s.log.Warn("Clip points out of order for short video", map[string]interface{}{
			"video_id": task.VideoID,
			"duration": duration,
			"points":   fmt.Sprint(points),
		})
	}

	s.tasksMutex.Lock()
	task.Width, task.Height = width, height
	task.TargetWidth, task.TargetHeight = geometry.TargetWidth, geometry.TargetHeight
	task.Duration = duration
	task.ClipPoints = points
	s.tasksMutex.Unlock()

	s.log.Debug("Computed crop", map[string]interface{}{
		"video_id": task.VideoID,
		"geometry": geometry.String(),
		"filter":   geometry.Filter(),
	})

	if err := platform.CreateDirectoryIfNotExists(s.outputDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	s.setStatus(task, model.TaskStatusCutting)
	for i, start := range points {
		n := i + 1
		output := filepath.Join(s.outputDir, platform.FragmentName(task.Title, n, task.Epoch))

		s.log.Info("Generating fragment", map[string]interface{}{
			"video_id": task.VideoID,
			"fragment": fmt.Sprintf("%d/%d", n, len(points)),
			"start":    media.StartSeconds(start),
		})

		err := s.media.Extract(ctx, media.Fragment{
			Input:    tmp.Path(),
			Output:   output,
			Start:    start,
			Geometry: geometry,
		})
		if err != nil {
			return fmt.Errorf("fragment %d: %w", n, err)
		}

		s.tasksMutex.Lock()
		task.Fragments = append(task.Fragments, output)
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
	}

	return nil
}

// resolveTitle falls back to the identifier when no title source answers
func (s *Service) resolveTitle(ctx context.Context, task *model.VideoTask) string {
	if s.titles == nil {
		return task.VideoID
	}
	title, err := s.titles.ResolveTitle(ctx, task.VideoID, task.URL)
	if err == nil && strings.TrimSpace(title) != "" {
		return title
	}
	if err == nil {
		err = platform.ErrEmptyTitle
	}
	s.log.Warn("Title unavailable, using identifier", map[string]interface{}{
		"video_id": task.VideoID,
		"error":    err,
	})
	return task.VideoID
}

func (s *Service) setStatus(task *model.VideoTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// finishTask stamps the terminal status. Errors caused by cancellation of
// ctx count as stopped, not failed.
func (s *Service) finishTask(ctx context.Context, task *model.VideoTask, err error) {
	s.tasksMutex.Lock()
	switch {
	case err == nil:
		task.Status = model.TaskStatusCompleted
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		task.Status = model.TaskStatusStopped
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	}
	task.FinishedAt = s.now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.VideoTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}
