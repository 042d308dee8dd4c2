package runner

import (
	"fmt"
	"os/exec"
	"sort"
)

// RequiredTools are the programs synthesized commands call.
var RequiredTools = []string{"tar", "zip"}

// OptionalTools are not called directly but extend the formats tar can read.
var OptionalTools = map[string]string{
	"unzip": "ZIP",
	"unrar": "RAR",
	"7z":    "7-Zip",
	"xz":    "XZ",
	"bzip2": "BZIP2",
}

// ToolStatus is the lookup result for one program.
type ToolStatus struct {
	Name     string
	Format   string
	Path     string
	Required bool
}

// Found reports whether the program is on PATH.
func (s ToolStatus) Found() bool { return s.Path != "" }

// LookPathFunc matches exec.LookPath.
type LookPathFunc func(file string) (string, error)

// CheckTools looks up every known tool. The error lists the missing required
// tools; missing optional tools are only reported in the statuses.
func CheckTools(lookPath LookPathFunc) ([]ToolStatus, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var statuses []ToolStatus
	var missing []string
	for _, name := range RequiredTools {
		path, err := lookPath(name)
		if err != nil {
			missing = append(missing, name)
		}
		statuses = append(statuses, ToolStatus{Name: name, Path: path, Required: true})
	}
	for _, name := range sortedKeys(OptionalTools) {
		path, _ := lookPath(name)
		statuses = append(statuses, ToolStatus{Name: name, Format: OptionalTools[name], Path: path})
	}

	if len(missing) > 0 {
		return statuses, fmt.Errorf("required tools not found in PATH: %v", missing)
	}
	return statuses, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
