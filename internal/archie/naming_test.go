package archie

import (
	"errors"
	"testing"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		name    string
		p       *Path
		want    string
		wantErr bool
	}{
		{"directory keeps segment verbatim", NewDirectoryPath("./resources/test/files", ""), "files", false},
		{"dotted directory", NewDirectoryPath("/srv/release.v2", "*.zip"), "release.v2", false},
		{"file cut at first dot", NewFilePath("a/b/name.tar.gz"), "name", false},
		{"file without extension", NewFilePath("/bin/Makefile"), "Makefile", false},
		{"single segment", NewFilePath("notes.txt"), "notes", false},
		{"trailing separator ignored", NewDirectoryPath("/srv/data/", ""), "data", false},
		{"root has no segment", NewDirectoryPath("/", ""), "", true},
		{"hidden file has no stem", NewFilePath("/home/u/.bashrc"), "", true},
		{"empty path", NewFilePath(""), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ShortName(tt.p)
			if tt.wantErr {
				if !errors.Is(err, ErrCouldNotSplitPath) {
					t.Fatalf("ShortName(%#v) error = %v, want ErrCouldNotSplitPath", tt.p, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ShortName(%#v) error = %v", tt.p, err)
			}
			if got != tt.want {
				t.Errorf("ShortName(%#v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestCleanArchiveBasename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my.file", "my_file_archive"},
		{"files", "files_archive"},
		{"a.b.c", "a_b_c_archive"},
		{"", "_archive"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanArchiveBasename(tt.in); got != tt.want {
				t.Errorf("CleanArchiveBasename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlainNamer(t *testing.T) {
	p := NewDirectoryPath("/srv/release.v2", "")

	first, err := PlainNamer{}.ArchiveBasename(p, ".zip")
	if err != nil {
		t.Fatalf("ArchiveBasename() error = %v", err)
	}
	second, _ := PlainNamer{}.ArchiveBasename(p, ".tar")
	if first != "release_v2_archive" || second != first {
		t.Errorf("ArchiveBasename() = %q then %q, want release_v2_archive twice", first, second)
	}
}

type sequenceIDs struct{ ids []string }

func (s *sequenceIDs) New() string {
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id
}

func TestUniqueNamer(t *testing.T) {
	n := &UniqueNamer{IDs: &sequenceIDs{ids: []string{"0b1c", "v1.2"}}}
	p := NewFilePath("/tmp/report.pdf")

	first, err := n.ArchiveBasename(p, ".zip")
	if err != nil {
		t.Fatalf("ArchiveBasename() error = %v", err)
	}
	if first != "report_archive_0b1c" {
		t.Errorf("first name = %q, want %q", first, "report_archive_0b1c")
	}

	second, _ := n.ArchiveBasename(p, ".zip")
	if second != "report_archive_v1_2" {
		t.Errorf("second name = %q, want dots replaced: %q", second, "report_archive_v1_2")
	}
}

func TestUniqueNamer_PropagatesShortNameError(t *testing.T) {
	n := &UniqueNamer{IDs: &sequenceIDs{ids: []string{"x"}}}
	if _, err := n.ArchiveBasename(NewDirectoryPath("/", ""), ".zip"); !errors.Is(err, ErrCouldNotSplitPath) {
		t.Errorf("ArchiveBasename() error = %v, want ErrCouldNotSplitPath", err)
	}
}
