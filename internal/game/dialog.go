package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// pickFile shows a native open dialog. An empty path with a nil error means
// the user cancelled.
func pickFile(title, filterName string, patterns ...string) (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title(title),
		zenity.FileFilters{{
			Name:     filterName,
			Patterns: patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

func pickAudio() (string, error) {
	return pickFile("Open Audio File", "Audio", "*.wav", "*.mp3", "*.flac")
}

func pickPreset() (string, error) {
	return pickFile("Open Preset", "YAML", "*.yaml", "*.yml")
}
