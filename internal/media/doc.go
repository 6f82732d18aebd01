// Package media probes downloaded containers with ffprobe, computes the
// vertical crop window and clip points, and cuts fragments with ffmpeg.
package media
