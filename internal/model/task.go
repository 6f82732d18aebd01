package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskIDPrefix prefixes generated video task IDs
const TaskIDPrefix = "video-"

// VideoTask tracks one channel video through download, probe and cut
type VideoTask struct {
	ID         string
	RunID      string
	VideoID    string
	URL        string
	Index      int // 1-based position in the channel listing
	Title      string
	SourcePath string
	Epoch      int64 // capture-time Unix seconds shared by all fragments of this video

	Width        int
	Height       int
	TargetWidth  int
	TargetHeight int
	Duration     float64
	ClipPoints   []float64
	Fragments    []string

	Status     TaskStatus
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewVideoTask creates a pending task for a listed identifier
func NewVideoTask(runID string, index int, videoID, url string) *VideoTask {
	return &VideoTask{
		ID:      GenerateTaskID(),
		RunID:   runID,
		VideoID: videoID,
		URL:     url,
		Index:   index,
		Status:  TaskStatusPending,
	}
}

// GenerateTaskID returns a time-ordered unique task ID
func GenerateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}

// GetDisplayTitle returns title, video ID, or URL in order of preference
func (vt *VideoTask) GetDisplayTitle() string {
	if strings.TrimSpace(vt.Title) != "" {
		return vt.Title
	}
	if vt.VideoID != "" {
		return vt.VideoID
	}
	return vt.URL
}

// Elapsed returns how long the task ran, or ran so far if unfinished
func (vt *VideoTask) Elapsed() time.Duration {
	if vt.StartedAt.IsZero() {
		return 0
	}
	if vt.FinishedAt.IsZero() {
		return time.Since(vt.StartedAt)
	}
	return vt.FinishedAt.Sub(vt.StartedAt)
}

// GetElapsedString returns elapsed time formatted as mm:ss or hh:mm:ss
func (vt *VideoTask) GetElapsedString() string {
	secs := int(vt.Elapsed().Seconds())
	if secs <= 0 {
		return "—"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// RunSummary aggregates the outcome of a channel run
type RunSummary struct {
	RunID      string
	ChannelURL string
	Total      int
	Completed  int
	Failed     int
	Stopped    int
	Skipped    int
	Fragments  int
	Failures   map[string]string // video ID -> error text
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRunSummary creates an empty summary for a run
func NewRunSummary(runID, channelURL string) *RunSummary {
	return &RunSummary{
		RunID:      runID,
		ChannelURL: channelURL,
		Failures:   make(map[string]string),
		StartedAt:  time.Now(),
	}
}

// Record folds a task's final state into the summary
func (rs *RunSummary) Record(task *VideoTask) {
	rs.Total++
	rs.Fragments += len(task.Fragments)
	switch task.Status {
	case TaskStatusCompleted:
		rs.Completed++
	case TaskStatusError:
		rs.Failed++
		rs.Failures[task.VideoID] = task.LastError
	case TaskStatusStopped:
		rs.Stopped++
	default:
		rs.Skipped++
	}
}

// Finalize stamps the finish time
func (rs *RunSummary) Finalize() {
	rs.FinishedAt = time.Now()
}

// HasFailures reports whether any video failed
func (rs *RunSummary) HasFailures() bool {
	return rs.Failed > 0
}
