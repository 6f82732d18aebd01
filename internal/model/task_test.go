package model

import (
	"strings"
	"testing"
	"time"
)

func TestVideoTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		videoID  string
		url      string
		expected string
	}{
		{"Video Title", "abc", "https://www.youtube.com/watch?v=abc", "Video Title"},
		{"", "abc", "https://www.youtube.com/watch?v=abc", "abc"},
		{"   ", "", "https://www.youtube.com/watch?v=abc", "https://www.youtube.com/watch?v=abc"},
	}

	for _, test := range tests {
		task := &VideoTask{Title: test.title, VideoID: test.videoID, URL: test.url}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() = %q, expected %q", result, test.expected)
		}
	}
}

func TestVideoTask_GetElapsedString(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{0, "—"},
		{90 * time.Second, "01:30"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
	}

	for _, test := range tests {
		task := &VideoTask{StartedAt: start, FinishedAt: start.Add(test.elapsed)}
		if got := task.GetElapsedString(); got != test.expected {
			t.Errorf("GetElapsedString() for %v = %s, expected %s", test.elapsed, got, test.expected)
		}
	}

	if got := (&VideoTask{}).GetElapsedString(); got != "—" {
		t.Errorf("Unstarted task should report —, got %s", got)
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := GenerateTaskID()
	id2 := GenerateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}
	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with %q, got: %s", TaskIDPrefix, id1)
	}
	if len(id1) != len(TaskIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(TaskIDPrefix)+36, len(id1), id1)
	}
}

func TestChannel_AddVideoKeepsOrder(t *testing.T) {
	ch := NewChannel("https://www.youtube.com/@example", "run-1")
	for _, id := range []string{"c", "a", "b"} {
		ch.AddVideo(id, "https://www.youtube.com/watch?v="+id)
	}

	if ch.Len() != 3 {
		t.Fatalf("Expected 3 tasks, got %d", ch.Len())
	}
	for i, want := range []string{"c", "a", "b"} {
		task := ch.Tasks[i]
		if task.VideoID != want {
			t.Errorf("Task %d: expected video %s, got %s", i, want, task.VideoID)
		}
		if task.Index != i+1 {
			t.Errorf("Task %d: expected 1-based index %d, got %d", i, i+1, task.Index)
		}
		if task.RunID != "run-1" || task.Status != TaskStatusPending {
			t.Errorf("Task %d: unexpected run/status %s/%s", i, task.RunID, task.Status)
		}
	}
}

func TestRunSummary_Record(t *testing.T) {
	rs := NewRunSummary("run-1", "https://www.youtube.com/@example")

	rs.Record(&VideoTask{VideoID: "a", Status: TaskStatusCompleted, Fragments: []string{"1", "2", "3", "4"}})
	rs.Record(&VideoTask{VideoID: "b", Status: TaskStatusError, LastError: "ffmpeg exited with code 1"})
	rs.Record(&VideoTask{VideoID: "c", Status: TaskStatusStopped, Fragments: []string{"1"}})
	rs.Record(&VideoTask{VideoID: "d", Status: TaskStatusPending})
	rs.Finalize()

	if rs.Total != 4 || rs.Completed != 1 || rs.Failed != 1 || rs.Stopped != 1 || rs.Skipped != 1 {
		t.Errorf("Unexpected counters: %+v", rs)
	}
	if rs.Fragments != 5 {
		t.Errorf("Expected 5 fragments, got %d", rs.Fragments)
	}
	if rs.Failures["b"] != "ffmpeg exited with code 1" {
		t.Errorf("Expected failure text for b, got %q", rs.Failures["b"])
	}
	if !rs.HasFailures() {
		t.Error("Expected HasFailures to be true")
	}
	if rs.FinishedAt.Before(rs.StartedAt) {
		t.Error("FinishedAt should not precede StartedAt")
	}
}
