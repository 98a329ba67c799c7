// Package action defines what can be done to a selection of media files.
package action

import (
	"fmt"
	"path/filepath"

	"mediapost/media"
	"mediapost/proc"
)

// Action identifies one entry of the action menu
type Action int

const (
	ExtractAudio Action = iota
	Reencode
	Transcribe
	RemoteExtract
)

// Option is a menu label bound to an action
type Option struct {
	Label  string
	Action Action
}

// Options is the action menu, in display order
var Options = []Option{
	{"Extract audio with MP3 format", ExtractAudio},
	{"Re-encode media files to MP4 format", Reencode},
	{"Transcribe audio with a Whisper model", Transcribe},
	{"Extract MP3 audio from a remote video link", RemoteExtract},
}

// String returns the menu label of the action
func (a Action) String() string {
	for _, opt := range Options {
		if opt.Action == a {
			return opt.Label
		}
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Labels returns the labels of opts
func Labels(opts []Option) []string {
	labels := make([]string, len(opts))
	for i, opt := range opts {
		labels[i] = opt.Label
	}
	return labels
}

// Actions returns the action ids of opts
func Actions(opts []Option) []Action {
	actions := make([]Action, len(opts))
	for i, opt := range opts {
		actions[i] = opt.Action
	}
	return actions
}

// Job is one external tool invocation bound to one input file
type Job struct {
	Label   string
	Input   string
	Output  string
	Command proc.Command
	// Skip, when set, fails the job without launching anything
	Skip error
}

// Title is shown on the job's status line
func (j Job) Title() string {
	if j.Label != "" {
		return j.Label
	}
	return filepath.Base(j.Input)
}

// Outcome is the terminal status of a job
type Outcome struct {
	Job Job
	Err error
}

// Succeeded reports whether the job finished cleanly
func (o Outcome) Succeeded() bool { return o.Err == nil }

// Plan builds one job per file for the ffmpeg batch actions.
// Transcribe and RemoteExtract are not batch ffmpeg actions and yield an error.
func Plan(a Action, tools media.Tools, files []media.Item) ([]Job, error) {
	jobs := make([]Job, 0, len(files))
	for _, f := range files {
		var job Job
		switch a {
		case ExtractAudio:
			out := media.AudioOutputPath(f.Path)
			job = Job{Input: f.Path, Output: out, Command: tools.ExtractAudioCommand(f.Path, out)}
			if filepath.Clean(out) == filepath.Clean(f.Path) {
				job.Skip = fmt.Errorf("%s is already an mp3 file", f.Label)
			}
		case Reencode:
			out := media.ReencodeOutputPath(f.Path)
			job = Job{Input: f.Path, Output: out, Command: tools.ReencodeCommand(f.Path, out)}
		default:
			return nil, fmt.Errorf("%s is not a batch action", a)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// RemoteJob builds the download job for a remote video URL
func RemoteJob(tools media.Tools, url, dir string) Job {
	return Job{
		Label:   url,
		Input:   url,
		Command: tools.RemoteAudioCommand(url, dir),
	}
}

// Summary counts successes and failures
func Summary(outcomes []Outcome) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
