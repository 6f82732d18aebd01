package model

import (
	"time"
)

// Channel is the ordered listing of one channel run
type Channel struct {
	URL       string        `json:"url"`
	RunID     string        `json:"run_id"`
	Tasks     []*VideoTask  `json:"tasks"`
	Status    ChannelStatus `json:"status"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewChannel creates a new channel instance
func NewChannel(url, runID string) *Channel {
	now := time.Now()
	return &Channel{
		URL:       url,
		RunID:     runID,
		Status:    ChannelStatusListing,
		Tasks:     make([]*VideoTask, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddVideo appends a pending task for the identifier, keeping listing order
func (c *Channel) AddVideo(videoID, url string) *VideoTask {
	task := NewVideoTask(c.RunID, len(c.Tasks)+1, videoID, url)
	c.Tasks = append(c.Tasks, task)
	c.UpdatedAt = time.Now()
	return task
}

// UpdateStatus updates the channel status
func (c *Channel) UpdateStatus(status ChannelStatus) {
	c.Status = status
	c.UpdatedAt = time.Now()
}

// Len returns the number of listed videos
func (c *Channel) Len() int {
	return len(c.Tasks)
}
