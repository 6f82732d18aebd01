// Package platform contains external tooling glue: the subprocess runner,
// the yt-dlp command line wrapper, the in-process playlist/title client and
// work directory file helpers.
package platform
