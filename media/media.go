package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Item is a media file found in the working directory
type Item struct {
	Path  string
	Label string
}

// Extensions is the allow-list of recognized media extensions
var Extensions = []string{".mp4", ".mp3", ".mkv", ".avi", ".flv", ".mov", ".wmv", ".mpeg", ".mpg", ".wav"}

var extensionSet = func() map[string]bool {
	set := make(map[string]bool, len(Extensions))
	for _, ext := range Extensions {
		set[ext] = true
	}
	return set
}()

// IsMediaFile checks if a file has a recognized media extension
func IsMediaFile(path string) bool {
	return extensionSet[strings.ToLower(filepath.Ext(path))]
}

// ListFiles returns the regular media files in dir, sorted by name.
// Symlinks count when they resolve to a regular file.
func ListFiles(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var items []Item
	for _, entry := range entries {
		if !IsMediaFile(entry.Name()) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		items = append(items, Item{
			Path:  filepath.Join(dir, entry.Name()),
			Label: entry.Name(),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items, nil
}

func baseName(inputPath string) (dir, base string) {
	ext := filepath.Ext(inputPath)
	return filepath.Dir(inputPath), strings.TrimSuffix(filepath.Base(inputPath), ext)
}

// AudioOutputPath derives the mp3 path for audio extraction: video.mp4 -> video.mp3
func AudioOutputPath(inputPath string) string {
	dir, base := baseName(inputPath)
	return filepath.Join(dir, base+".mp3")
}

// ReencodeOutputPath derives the re-encode target: video.mp4 -> video_reencoded.mp4
func ReencodeOutputPath(inputPath string) string {
	dir, base := baseName(inputPath)
	return filepath.Join(dir, base+"_reencoded.mp4")
}

// TranscriptOutputPath derives the transcript path: video.mp4 -> video_transcript.txt
func TranscriptOutputPath(inputPath string) string {
	dir, base := baseName(inputPath)
	return filepath.Join(dir, base+"_transcript.txt")
}

// CheckTool checks if an external executable can be found
func CheckTool(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found. Please install it first", name)
	}
	return nil
}
