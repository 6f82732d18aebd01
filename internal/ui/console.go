package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ytget/yt-shorts/internal/model"
)

type taskView struct {
	status    model.TaskStatus
	fragments int
}

// Console prints run progress to a writer
type Console struct {
	out    io.Writer
	styles Styles

	mu    sync.Mutex
	total int
	seen  map[string]taskView
}

// NewConsole creates a console writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		styles: NewStyles(out),
		seen:   make(map[string]taskView),
	}
}

// PrintHeader announces the channel and the number of listed videos
func (c *Console) PrintHeader(channel *model.Channel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total = channel.Len()
	fmt.Fprintln(c.out, c.styles.Title.Render(IconSearch+" "+channel.URL))
	fmt.Fprintln(c.out, c.styles.Status.Render(fmt.Sprintf("%s %d videos found", IconDone, c.total))+
		c.styles.Info.Render(MiddleDotSeparator+"run "+channel.RunID))
}

// PrintListingError reports a fatal listing failure
func (c *Console) PrintListingError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.styles.Error.Render(IconError+" Failed to list channel videos:"))
	fmt.Fprintln(c.out, err.Error())
}

// HandleUpdate prints a line when the task's status or fragment count changed.
// It is meant to be passed to the download service's update callback.
func (c *Console) HandleUpdate(task *model.VideoTask) {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := taskView{status: task.Status, fragments: len(task.Fragments)}
	if prev, ok := c.seen[task.ID]; ok && prev == view {
		return
	}
	c.seen[task.ID] = view

	line := c.formatLine(task)
	if line == "" {
		return
	}
	fmt.Fprintln(c.out, line)
}

func (c *Console) formatLine(task *model.VideoTask) string {
	position := fmt.Sprintf(PositionFormat, task.Index, c.total)
	title := task.GetDisplayTitle()

	if task.Status.IsFinished() {
		return c.formatFinished(task, position, title)
	}

	switch task.Status {
	case model.TaskStatusDownloading:
		return "\n" + c.styles.Highlight.Render(IconVideo+" "+position) + " " +
			c.styles.Status.Render(IconPlay+" Downloading: "+title)
	case model.TaskStatusProbing:
		return c.styles.Info.Render(IconProbe + " Probing resolution and duration...")
	case model.TaskStatusCutting:
		done := len(task.Fragments)
		total := len(task.ClipPoints)
		if done >= total {
			return ""
		}
		start := int(task.ClipPoints[done])
		return c.styles.Status.Render(fmt.Sprintf("%s Generating fragment "+FragmentFormat+" from %ds...", IconCut, done+1, total, start))
	default:
		return ""
	}
}

func (c *Console) formatFinished(task *model.VideoTask, position, title string) string {
	switch task.Status {
	case model.TaskStatusCompleted:
		return c.styles.Status.Render(fmt.Sprintf("%s %s%s%d fragments%s%s",
			IconDone, title, MiddleDotSeparator, len(task.Fragments), MiddleDotSeparator, task.GetElapsedString()))
	case model.TaskStatusStopped:
		return c.styles.Warn.Render(IconStopped + " Stopped: " + title)
	default:
		return c.styles.Error.Render(fmt.Sprintf("%s %s Error processing video %s: %s", IconWarn, position, task.VideoID, task.LastError))
	}
}

// PrintSummary prints the final run summary box
func (c *Console) PrintSummary(s *model.RunSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Videos:    %d\n", s.Total)
	fmt.Fprintf(&b, "Completed: %d\n", s.Completed)
	fmt.Fprintf(&b, "Failed:    %d\n", s.Failed)
	if s.Stopped > 0 || s.Skipped > 0 {
		fmt.Fprintf(&b, "Stopped:   %d\n", s.Stopped)
		fmt.Fprintf(&b, "Skipped:   %d\n", s.Skipped)
	}
	fmt.Fprintf(&b, "Fragments: %d\n", s.Fragments)
	fmt.Fprintf(&b, "Elapsed:   %s", formatDuration(s.FinishedAt.Sub(s.StartedAt)))

	if len(s.Failures) > 0 {
		ids := make([]string, 0, len(s.Failures))
		for id := range s.Failures {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		b.WriteString("\n\nFailures:")
		for _, id := range ids {
			fmt.Fprintf(&b, "\n  %s: %s", id, s.Failures[id])
		}
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Highlight.Render("Run "+s.RunID))
	fmt.Fprintln(c.out, c.styles.Box.Render(b.String()))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return DashPlaceholder
	}
	return d.Round(time.Second).String()
}
