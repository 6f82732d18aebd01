// Package model defines domain data structures shared by the pipeline: the
// channel listing, per-video tasks, status enums and the run summary.
package model
