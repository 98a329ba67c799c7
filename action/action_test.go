package action

import (
	"errors"
	"path/filepath"
	"testing"

	"mediapost/media"
)

func items(names ...string) []media.Item {
	var out []media.Item
	for _, n := range names {
		out = append(out, media.Item{Path: filepath.Join("work", n), Label: n})
	}
	return out
}

func TestPlanExtractAudio(t *testing.T) {
	jobs, err := Plan(ExtractAudio, media.DefaultTools, items("video.mp4", "talk.mkv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Output != filepath.Join("work", "video.mp3") {
		t.Errorf("output = %q", jobs[0].Output)
	}
	if jobs[0].Command.Name != "ffmpeg" {
		t.Errorf("command = %q", jobs[0].Command.Name)
	}
	if jobs[1].Title() != "talk.mkv" {
		t.Errorf("title = %q", jobs[1].Title())
	}
}

func TestPlanExtractAudioFromMP3IsSkipped(t *testing.T) {
	jobs, err := Plan(ExtractAudio, media.DefaultTools, items("song.mp3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs[0].Skip == nil {
		t.Error("extracting song.mp3 onto itself should be skipped")
	}
}

func TestPlanReencode(t *testing.T) {
	jobs, err := Plan(Reencode, media.DefaultTools, items("video.mp4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs[0].Output != filepath.Join("work", "video_reencoded.mp4") {
		t.Errorf("output = %q", jobs[0].Output)
	}
	if jobs[0].Skip != nil {
		t.Errorf("unexpected skip: %v", jobs[0].Skip)
	}
}

func TestPlanRejectsNonBatchActions(t *testing.T) {
	for _, a := range []Action{Transcribe, RemoteExtract} {
		if _, err := Plan(a, media.DefaultTools, items("video.mp4")); err == nil {
			t.Errorf("Plan(%v) expected error", a)
		}
	}
}

func TestOptionsCoverEveryAction(t *testing.T) {
	seen := map[Action]bool{}
	for _, opt := range Options {
		seen[opt.Action] = true
	}
	for _, a := range []Action{ExtractAudio, Reencode, Transcribe, RemoteExtract} {
		if !seen[a] {
			t.Errorf("action %d missing from menu", a)
		}
	}
	if len(Labels(Options)) != len(Actions(Options)) {
		t.Error("labels and actions out of step")
	}
}

func TestActionString(t *testing.T) {
	if Reencode.String() != "Re-encode media files to MP4 format" {
		t.Errorf("Reencode.String() = %q", Reencode.String())
	}
	if Action(99).String() != "Action(99)" {
		t.Errorf("unknown action string = %q", Action(99).String())
	}
}

func TestSummary(t *testing.T) {
	outcomes := []Outcome{{}, {Err: errors.New("boom")}, {}}
	ok, failed := Summary(outcomes)
	if ok != 2 || failed != 1 {
		t.Errorf("Summary = %d, %d; want 2, 1", ok, failed)
	}
}

func TestRemoteJob(t *testing.T) {
	job := RemoteJob(media.DefaultTools, "https://example.com/watch?v=1", "/work")
	if job.Command.Name != "yt-dlp" || job.Command.Dir != "/work" {
		t.Errorf("job = %+v", job)
	}
	if job.Output != "" {
		t.Error("remote output is named by yt-dlp")
	}
}
