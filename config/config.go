// Package config reads the tool locations and logging settings from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"mediapost/media"

	"github.com/joho/godotenv"
)

const (
	EnvFFmpeg  = "MEDIAPOST_FFMPEG"
	EnvYtDlp   = "MEDIAPOST_YTDLP"
	EnvWhisper = "MEDIAPOST_WHISPER"
	EnvLogFile = "MEDIAPOST_LOG_FILE"
)

// Config is built once at startup and never modified afterwards
type Config struct {
	FFmpeg  string
	YtDlp   string
	Whisper string
	LogFile string
}

// Defaults are used for unset variables
var Defaults = Config{
	FFmpeg:  "ffmpeg",
	YtDlp:   "yt-dlp",
	Whisper: "whisper-cli",
}

// LoadDotEnv loads the given files (".env" when none) into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds a Config from getenv, falling back to Defaults
func Load(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	pick := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}
	return Config{
		FFmpeg:  pick(EnvFFmpeg, Defaults.FFmpeg),
		YtDlp:   pick(EnvYtDlp, Defaults.YtDlp),
		Whisper: pick(EnvWhisper, Defaults.Whisper),
		LogFile: pick(EnvLogFile, ""),
	}
}

// Tools returns the external programs used by the media actions
func (c Config) Tools() media.Tools {
	return media.Tools{FFmpeg: c.FFmpeg, YtDlp: c.YtDlp}
}
