package media

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ytget/yt-shorts/internal/platform"
)

type recordedCall struct {
	name string
	args []string
}

type fakeRunner struct {
	calls  []recordedCall
	output string
	err    error
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	return []byte(f.output), f.err
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	return f.err
}

// hasPair reports whether flag is immediately followed by value
func hasPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(&fakeRunner{}, "", " ")

	if s.ffmpegPath != FFmpegCommand {
		t.Errorf("Expected ffmpeg path %s, got %s", FFmpegCommand, s.ffmpegPath)
	}
	if s.ffprobePath != FFprobeCommand {
		t.Errorf("Expected ffprobe path %s, got %s", FFprobeCommand, s.ffprobePath)
	}
}

func TestProbeGeometry(t *testing.T) {
	runner := &fakeRunner{output: "1920x1080\n"}
	s := NewService(runner, "", "/usr/local/bin/ffprobe")

	width, height, err := s.ProbeGeometry(context.Background(), "tmp_abc.mp4")
	if err != nil {
		t.Fatalf("ProbeGeometry() error: %v", err)
	}
	if width != 1920 || height != 1080 {
		t.Errorf("Expected 1920x1080, got %dx%d", width, height)
	}

	got := runner.calls[0]
	if got.name != "/usr/local/bin/ffprobe" {
		t.Errorf("Expected configured ffprobe, got %s", got.name)
	}
	want := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0:s=x",
		"tmp_abc.mp4",
	}
	if !reflect.DeepEqual(got.args, want) {
		t.Errorf("Expected args %v, got %v", want, got.args)
	}
}

func TestProbeGeometry_Failure(t *testing.T) {
	cmdErr := &platform.CommandError{Name: "ffprobe", ExitCode: 1, Stderr: "No such file"}
	s := NewService(&fakeRunner{err: cmdErr}, "", "")

	_, _, err := s.ProbeGeometry(context.Background(), "missing.mp4")
	var ce *platform.CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected *platform.CommandError in chain, got %v", err)
	}
}

func TestProbeDuration(t *testing.T) {
	runner := &fakeRunner{output: "125.480000\n"}
	s := NewService(runner, "", "")

	duration, err := s.ProbeDuration(context.Background(), "tmp_abc.mp4")
	if err != nil {
		t.Fatalf("ProbeDuration() error: %v", err)
	}
	if duration != 125.48 {
		t.Errorf("Expected 125.48, got %v", duration)
	}

	want := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"tmp_abc.mp4",
	}
	if !reflect.DeepEqual(runner.calls[0].args, want) {
		t.Errorf("Expected args %v, got %v", want, runner.calls[0].args)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		output        string
		width, height int
		wantErr       bool
	}{
		{output: "1280x720", width: 1280, height: 720},
		{output: " 640x360 \n", width: 640, height: 360},
		{output: "1920x1080\n1920x1080\n", width: 1920, height: 1080},
		{output: "", wantErr: true},
		{output: "N/A", wantErr: true},
		{output: "axb", wantErr: true},
	}

	for _, tt := range tests {
		w, h, err := ParseSize(tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSize(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			continue
		}
		if w != tt.width || h != tt.height {
			t.Errorf("ParseSize(%q) = %dx%d, expected %dx%d", tt.output, w, h, tt.width, tt.height)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		output  string
		want    float64
		wantErr bool
	}{
		{output: "30.000000\n", want: 30},
		{output: "0", want: 0},
		{output: "N/A", wantErr: true},
		{output: "-1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, expected %v", tt.output, got, tt.want)
		}
	}
}

func TestBuildExtractArgs(t *testing.T) {
	g, err := ComputeGeometry(1920, 1080)
	if err != nil {
		t.Fatalf("ComputeGeometry() error: %v", err)
	}
	args := BuildExtractArgs(Fragment{
		Input:    "tmp_abc.mp4",
		Output:   "Screensaver Title #2 #shorts 1700000000.mp4",
		Start:    39.6,
		Geometry: g,
	})

	if !hasPair(args, "-ss", "39") {
		t.Errorf("Expected truncated seek -ss 39 in %v", args)
	}
	if !hasPair(args, "-i", "tmp_abc.mp4") {
		t.Errorf("Expected input in %v", args)
	}
	if indexOf(args, "-ss") > indexOf(args, "-i") {
		t.Errorf("Seek must precede the input: %v", args)
	}
	if !hasPair(args, "-t", "60") {
		t.Errorf("Expected -t 60 in %v", args)
	}
	if !hasPair(args, "-vf", "crop=606:1080:657:0,scale=606:1080") {
		t.Errorf("Expected crop+scale filter in %v", args)
	}
	if indexOf(args, "-an") < 0 {
		t.Errorf("Expected -an in %v", args)
	}
	if !hasPair(args, "-preset", EncodePreset) {
		t.Errorf("Expected -preset %s in %v", EncodePreset, args)
	}
	if indexOf(args, "-y") < 0 {
		t.Errorf("Expected -y in %v", args)
	}
	if indexOf(args, "Screensaver Title #2 #shorts 1700000000.mp4") < indexOf(args, "-i") {
		t.Errorf("Output must follow the input: %v", args)
	}
}

func TestExtract(t *testing.T) {
	runner := &fakeRunner{}
	s := NewService(runner, "/opt/ffmpeg", "")
	g, _ := ComputeGeometry(1280, 720)

	f := Fragment{Input: "in.mp4", Output: "out.mp4", Start: 0, Geometry: g}
	if err := s.Extract(context.Background(), f); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if runner.calls[0].name != "/opt/ffmpeg" {
		t.Errorf("Expected configured ffmpeg, got %s", runner.calls[0].name)
	}
	if !reflect.DeepEqual(runner.calls[0].args, BuildExtractArgs(f)) {
		t.Errorf("Extract ran %v, expected %v", runner.calls[0].args, BuildExtractArgs(f))
	}
}

func TestExtract_Failure(t *testing.T) {
	cmdErr := &platform.CommandError{Name: "ffmpeg", ExitCode: 1, Stderr: "Conversion failed!"}
	s := NewService(&fakeRunner{err: cmdErr}, "", "")
	g, _ := ComputeGeometry(1280, 720)

	err := s.Extract(context.Background(), Fragment{Input: "in.mp4", Output: "out.mp4", Start: 79.2, Geometry: g})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, cmdErr) {
		t.Errorf("Expected CommandError in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "Conversion failed!") || !strings.Contains(err.Error(), "from 79s") {
		t.Errorf("Unexpected error text %q", err.Error())
	}
}
