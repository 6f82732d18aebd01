package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestTempSourceName(t *testing.T) {
	if got := TempSourceName("dQw4w9WgXcQ"); got != "tmp_dQw4w9WgXcQ.mp4" {
		t.Errorf("TempSourceName() = %s, expected tmp_dQw4w9WgXcQ.mp4", got)
	}
}

func TestFragmentName(t *testing.T) {
	got := FragmentName("Night Drive - Tokyo", 3, 1700000000)
	want := "Screensaver Night Drive - Tokyo #3 #shorts 1700000000.mp4"
	if got != want {
		t.Errorf("FragmentName() = %q, expected %q", got, want)
	}
}

func TestAcquireTempSource_ClearsStaleFiles(t *testing.T) {
	dir := t.TempDir()
	stale := []string{
		filepath.Join(dir, "tmp_abc.mp4"),
		filepath.Join(dir, "tmp_abc.f137.mp4"),
		filepath.Join(dir, "tmp_abc.mp4.part"),
	}
	for _, p := range stale {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to seed %s: %v", p, err)
		}
	}
	unrelated := filepath.Join(dir, "tmp_abcd.mp4")
	if err := os.WriteFile(unrelated, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to seed unrelated file: %v", err)
	}

	ts, err := AcquireTempSource(dir, "abc")
	if err != nil {
		t.Fatalf("AcquireTempSource() error: %v", err)
	}
	if ts.Path() != filepath.Join(dir, "tmp_abc.mp4") {
		t.Errorf("Unexpected path %s", ts.Path())
	}
	for _, p := range stale {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("Stale file %s should have been removed", p)
		}
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Errorf("File of another identifier must survive: %v", err)
	}
}

func TestTempSource_ReleaseWithPatternCharacters(t *testing.T) {
	tests := []struct {
		name    string
		subdir  string
		videoID string
	}{
		{name: "bracket in work dir", subdir: "work[1]", videoID: "abc"},
		{name: "star in work dir", subdir: "runs*", videoID: "abc"},
		{name: "bracket in identifier", subdir: "work", videoID: "a[b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), tt.subdir)
			ts, err := AcquireTempSource(dir, tt.videoID)
			if err != nil {
				t.Fatalf("AcquireTempSource() error: %v", err)
			}

			leftovers := []string{ts.Path(), ts.Path() + ".part", filepath.Join(dir, "tmp_"+tt.videoID+".f137.mp4")}
			for _, p := range leftovers {
				if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
					t.Fatalf("Failed to seed %s: %v", p, err)
				}
			}
			keep := filepath.Join(dir, "tmp_"+tt.videoID+"x.mp4")
			if err := os.WriteFile(keep, []byte("x"), 0o644); err != nil {
				t.Fatalf("Failed to seed %s: %v", keep, err)
			}

			if err := ts.Release(); err != nil {
				t.Fatalf("Release() error: %v", err)
			}
			for _, p := range leftovers {
				if _, err := os.Stat(p); !os.IsNotExist(err) {
					t.Errorf("Leftover %s should have been removed", p)
				}
			}
			if _, err := os.Stat(keep); err != nil {
				t.Errorf("File of another identifier must survive: %v", err)
			}
		})
	}
}

func TestAcquireTempSource_CreatesWorkDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "work")

	ts, err := AcquireTempSource(dir, "xyz")
	if err != nil {
		t.Fatalf("AcquireTempSource() error: %v", err)
	}
	if filepath.Dir(ts.Path()) != dir {
		t.Errorf("Expected temp file inside %s, got %s", dir, ts.Path())
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Work directory should exist: %v", err)
	}
}

func TestAcquireTempSource_RejectsBadIdentifiers(t *testing.T) {
	for _, id := range []string{"", "   ", "../etc"} {
		if _, err := AcquireTempSource(t.TempDir(), id); err == nil {
			t.Errorf("Expected error for identifier %q", id)
		}
	}
}

func TestTempSource_ReleaseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	ts, err := AcquireTempSource(dir, "vid")
	if err != nil {
		t.Fatalf("AcquireTempSource() error: %v", err)
	}

	if err := os.WriteFile(ts.Path(), []byte("media"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if err := os.WriteFile(ts.Path()+".part", []byte("partial"), 0o644); err != nil {
		t.Fatalf("Failed to write part file: %v", err)
	}

	if err := ts.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	if _, err := os.Stat(ts.Path()); !os.IsNotExist(err) {
		t.Error("Temp file should be removed")
	}
	if _, err := os.Stat(ts.Path() + ".part"); !os.IsNotExist(err) {
		t.Error("Part file should be removed")
	}

	if err := ts.Release(); err != nil {
		t.Errorf("Second Release() should be a no-op, got %v", err)
	}

	var nilSource *TempSource
	if err := nilSource.Release(); err != nil {
		t.Errorf("Release on nil should be a no-op, got %v", err)
	}
}
