package archie

import (
	"sort"
	"strings"
)

// recognizedExtensions is built once at init and never written afterwards.
var recognizedExtensions = func() map[string]struct{} {
	exts := []string{
		".zip", ".rar", ".ar", ".tar", ".tgz", ".tbz", ".tbz2", ".tzo", ".cab", ".cbz", ".zoo",
		".tar.xz", ".tar.gz", ".tar.bz", ".tar.bz2", ".tar.lzo", ".tar.7z",
	}
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[ext] = struct{}{}
	}
	return set
}()

// RecognizedExtensions returns the recognized archive suffixes, sorted.
func RecognizedExtensions() []string {
	exts := make([]string, 0, len(recognizedExtensions))
	for ext := range recognizedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ExtensionOf returns the substring of name from its last '.' to the end.
// "a.tar.gz" yields ".gz".
func ExtensionOf(name string) (string, error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", pathError(name, ErrNoExtension)
	}
	return name[idx:], nil
}

// IsRecognizedArchive reports whether ext is exactly one of the recognized suffixes.
func IsRecognizedArchive(ext string) bool {
	_, ok := recognizedExtensions[ext]
	return ok
}

// MatchArchiveExtension returns the longest recognized suffix of name.
// Every dot is tried as a starting point, first to last, so compound
// suffixes such as ".tar.gz" win over their final segment.
func MatchArchiveExtension(name string) (string, bool) {
	for i := 0; i < len(name); i++ {
		if name[i] != '.' {
			continue
		}
		if IsRecognizedArchive(name[i:]) {
			return name[i:], true
		}
	}
	return "", false
}
