// Package download implements the channel pipeline: listing a channel,
// processing each video (title, download, probe, cut) with scoped temp file
// cleanup, and the sequential driver that isolates per-video failures and
// paces consecutive videos through a rate limiter. State changes are
// propagated to the console through an update callback.
package download
