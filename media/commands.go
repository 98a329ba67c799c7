package media

import "mediapost/proc"

// Tools names the executables used to build commands
type Tools struct {
	FFmpeg string
	YtDlp  string
}

// DefaultTools resolves executables from PATH
var DefaultTools = Tools{FFmpeg: "ffmpeg", YtDlp: "yt-dlp"}

// ExtractAudioCommand encodes the audio track to MP3, dropping video
func (t Tools) ExtractAudioCommand(inputPath, outputPath string) proc.Command {
	return proc.Command{
		Name: t.FFmpeg,
		Args: []string{
			"-y", // Overwrite output file if it exists
			"-i", inputPath,
			"-vn",
			"-acodec", "libmp3lame",
			"-ab", "192k",
			outputPath,
		},
	}
}

// ReencodeCommand re-encodes to an H.264/AAC MP4
func (t Tools) ReencodeCommand(inputPath, outputPath string) proc.Command {
	return proc.Command{
		Name: t.FFmpeg,
		Args: []string{
			"-y",
			"-i", inputPath,
			"-c:v", "libx264",
			"-preset", "medium",
			"-crf", "23",
			"-c:a", "aac",
			"-b:a", "128k",
			outputPath,
		},
	}
}

// WAVCommand converts any input to 16kHz mono WAV for speech recognition
func (t Tools) WAVCommand(inputPath, outputPath string) proc.Command {
	return proc.Command{
		Name: t.FFmpeg,
		Args: []string{
			"-y", "-i", inputPath,
			"-ac", "1", "-ar", "16000",
			"-f", "wav",
			outputPath,
		},
	}
}

// RemoteAudioCommand fetches the best audio of a remote video as MP3.
// The output file is named after the remote title.
func (t Tools) RemoteAudioCommand(url, dir string) proc.Command {
	return proc.Command{
		Name: t.YtDlp,
		Args: []string{
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "0",
			"--no-playlist",
			"-o", "%(title)s.%(ext)s",
			url,
		},
		Dir: dir,
	}
}
