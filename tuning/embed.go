package tuning

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var TuningFS embed.FS

// Dir is where on-disk overrides are looked up, relative to the working
// directory.
var Dir = "tuning"

// Load returns the named tuning file: an override under Dir first, then name
// read as a plain path, then the embedded copy.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("tuning: empty file name")
	}
	clean := cleanTuningPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return TuningFS.ReadFile(clean)
}

// LoadScript resolves scripts the same way as Load, under scripts/.
func LoadScript(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("tuning: empty script name")
	}
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports the modification time of an on-disk override.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanTuningPath(name)))
	if err != nil {
		info, err = os.Stat(name)
		if err != nil {
			return time.Time{}, false
		}
	}
	return info.ModTime(), true
}

func cleanTuningPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	s := cleanTuningPath(path)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
