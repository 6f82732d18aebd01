package model

// TaskStatus represents the processing state of a single channel video
type TaskStatus string

const (
	// TaskStatusPending means the video is listed but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means the source container is being fetched
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusProbing means geometry and duration are being read
	TaskStatusProbing TaskStatus = "Probing"

	// TaskStatusCutting means fragments are being encoded
	TaskStatusCutting TaskStatus = "Cutting"

	// TaskStatusStopped means the run was cancelled while the video was in flight
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means all fragments were produced
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means processing failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDownloading || ts == TaskStatusProbing || ts == TaskStatusCutting
}

// IsFinished returns true if the task is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// ChannelStatus represents the state of a whole channel run
type ChannelStatus string

const (
	ChannelStatusListing    ChannelStatus = "listing"
	ChannelStatusReady      ChannelStatus = "ready"
	ChannelStatusProcessing ChannelStatus = "processing"
	ChannelStatusCompleted  ChannelStatus = "completed"
	ChannelStatusStopped    ChannelStatus = "stopped"
	ChannelStatusError      ChannelStatus = "error"
)
