package archie

import "fmt"

// DiscoverArchives returns the names of the entries directly inside dir that
// carry a recognized archive extension, in the order the filesystem lists
// them. Entries matched by ignore are skipped; ignore may be nil.
func DiscoverArchives(fsmgr FilesystemManager, dir *Path, ignore NameFilter) ([]string, error) {
	if !dir.IsDir() {
		return nil, pathError(dir.Base(), ErrNotDirectory)
	}

	entries, err := fsmgr.ListDirectory(dir.Base())
	if err != nil {
		return nil, fmt.Errorf("listing directory %s: %w", dir.Base(), err)
	}

	var archives []string
	for _, name := range entries {
		if _, ok := MatchArchiveExtension(name); !ok {
			continue
		}
		if ignore != nil && ignore.Match(name) {
			continue
		}
		archives = append(archives, name)
	}
	return archives, nil
}
