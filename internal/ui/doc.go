// Package ui renders run progress on the terminal. It subscribes to the
// download service's update callback and prints one styled line per task
// state change, plus a header and a final summary box.
package ui
