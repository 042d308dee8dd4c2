package archie_test

import (
	"errors"
	"testing"

	"archie-go/internal/archie"
	"archie-go/internal/testutil"
)

func TestSynthesizer_Extract(t *testing.T) {
	tests := []struct {
		name string
		p    *archie.Path
		want archie.Command
	}{
		{"file", archie.NewFilePath("/data/a.tar.gz"), "tar -xvf /data/a.tar.gz"},
		{"whole directory", archie.NewDirectoryPath("/dir", ""), "tar -xvf /dir/*"},
		{"wildcard", archie.NewDirectoryPath("/dir", "*.zip"), "tar -xvf /dir/*.zip"},
		{"root directory", archie.NewDirectoryPath("/", "*.tar"), "tar -xvf /*.tar"},
	}

	synth := &archie.Synthesizer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := synth.Extract(tt.p)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesizer_ZipAndTar(t *testing.T) {
	files := archie.NewDirectoryPath("./resources/test/files", "")
	synth := &archie.Synthesizer{}

	t.Run("zip", func(t *testing.T) {
		got, err := synth.Zip(files, false)
		if err != nil {
			t.Fatalf("Zip() error = %v", err)
		}
		if want := archie.Command("zip -r files_archive.zip ./resources/test/files/*"); got != want {
			t.Errorf("Zip() = %q, want %q", got, want)
		}
	})

	t.Run("zip with password", func(t *testing.T) {
		got, err := synth.Zip(files, true)
		if err != nil {
			t.Fatalf("Zip() error = %v", err)
		}
		if want := archie.Command("zip -re files_archive.zip ./resources/test/files/*"); got != want {
			t.Errorf("Zip() = %q, want %q", got, want)
		}
	})

	t.Run("tar", func(t *testing.T) {
		got, err := synth.Tar(files)
		if err != nil {
			t.Fatalf("Tar() error = %v", err)
		}
		if want := archie.Command("tar -cf files_archive.tar ./resources/test/files/*"); got != want {
			t.Errorf("Tar() = %q, want %q", got, want)
		}
	})

	t.Run("single file keeps its stem", func(t *testing.T) {
		got, err := synth.Tar(archie.NewFilePath("/tmp/report.final.pdf"))
		if err != nil {
			t.Fatalf("Tar() error = %v", err)
		}
		if want := archie.Command("tar -cf report_archive.tar /tmp/report.final.pdf"); got != want {
			t.Errorf("Tar() = %q, want %q", got, want)
		}
	})

	t.Run("dotted directory name", func(t *testing.T) {
		got, err := synth.Zip(archie.NewDirectoryPath("/srv/release.v2", "*.bin"), false)
		if err != nil {
			t.Fatalf("Zip() error = %v", err)
		}
		if want := archie.Command("zip -r release_v2_archive.zip /srv/release.v2/*.bin"); got != want {
			t.Errorf("Zip() = %q, want %q", got, want)
		}
	})

	t.Run("unsplittable path", func(t *testing.T) {
		if _, err := synth.Tar(archie.NewDirectoryPath("/", "")); !errors.Is(err, archie.ErrCouldNotSplitPath) {
			t.Errorf("Tar() error = %v, want ErrCouldNotSplitPath", err)
		}
	})
}

func TestSynthesizer_OutputDir(t *testing.T) {
	synth := archie.NewSynthesizer(nil, "/backups", nil)

	got, err := synth.Tar(archie.NewDirectoryPath("/srv/site", ""))
	if err != nil {
		t.Fatalf("Tar() error = %v", err)
	}
	if want := archie.Command("tar -cf /backups/site_archive.tar /srv/site/*"); got != want {
		t.Errorf("Tar() = %q, want %q", got, want)
	}
}

func TestSynthesizer_CollisionSafeNamer(t *testing.T) {
	fsmgr := testutil.NewMockFilesystemManager()
	fsmgr.AddFile("/backups/site_archive.zip")
	synth := archie.NewSynthesizer(&archie.CollisionSafeNamer{FS: fsmgr, OutputDir: "/backups"}, "/backups", nil)

	got, err := synth.Zip(archie.NewDirectoryPath("/srv/site", ""), false)
	if err != nil {
		t.Fatalf("Zip() error = %v", err)
	}
	if want := archie.Command("zip -r /backups/site_archive_1.zip /srv/site/*"); got != want {
		t.Errorf("Zip() = %q, want %q", got, want)
	}
}

func TestSynthesizer_Quoting(t *testing.T) {
	synth := &archie.Synthesizer{}

	t.Run("spaces in base", func(t *testing.T) {
		got, err := synth.Extract(archie.NewFilePath("/data/my archive.tar"))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if want := archie.Command("tar -xvf '/data/my archive.tar'"); got != want {
			t.Errorf("Extract() = %q, want %q", got, want)
		}
	})

	t.Run("wildcard stays expandable", func(t *testing.T) {
		got, err := synth.Extract(archie.NewDirectoryPath("/data/my files", "report *.tar"))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if want := archie.Command("tar -xvf '/data/my files'/'report '*.tar"); got != want {
			t.Errorf("Extract() = %q, want %q", got, want)
		}
	})

	t.Run("shell metacharacters", func(t *testing.T) {
		got, err := synth.Extract(archie.NewFilePath("/data/a;rm -rf x.tar"))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if want := archie.Command("tar -xvf '/data/a;rm -rf x.tar'"); got != want {
			t.Errorf("Extract() = %q, want %q", got, want)
		}
	})

	t.Run("NUL byte cannot be quoted", func(t *testing.T) {
		_, err := synth.Extract(archie.NewFilePath("/data/a\x00b.tar"))
		if !errors.Is(err, archie.ErrUnquotablePath) {
			t.Errorf("Extract() error = %v, want ErrUnquotablePath", err)
		}
	})
}

func TestSynthesizer_Append(t *testing.T) {
	files := archie.NewDirectoryPath("/src", "")
	synth := &archie.Synthesizer{}

	tests := []struct {
		name    string
		archive *archie.Path
		files   *archie.Path
		want    archie.Command
	}{
		{"zip updates in place", archie.NewFilePath("/tmp/out.zip"), files, "zip -ur /tmp/out.zip /src/*"},
		{"tar appends", archie.NewFilePath("/tmp/out.tar"), files, "tar -rv --append --file=/tmp/out.tar /src/*"},
		{"compound suffix uses tar", archie.NewFilePath("/tmp/out.tar.gz"), files, "tar -rv --append --file=/tmp/out.tar.gz /src/*"},
		{"unknown suffix falls back to tar", archie.NewFilePath("/tmp/out.weird"), files, "tar -rv --append --file=/tmp/out.weird /src/*"},
		{"single file", archie.NewFilePath("/tmp/out.zip"), archie.NewFilePath("/src/new.txt"), "zip -ur /tmp/out.zip /src/new.txt"},
		{"wildcard selection", archie.NewFilePath("/tmp/out.tar"), archie.NewDirectoryPath("/src", "*.log"), "tar -rv --append --file=/tmp/out.tar /src/*.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := synth.Append(tt.archive, tt.files)
			if err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Append() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("directory archive", func(t *testing.T) {
		_, err := synth.Append(archie.NewDirectoryPath("/tmp/out", ""), files)
		if !errors.Is(err, archie.ErrArchiveIsDirectory) {
			t.Errorf("Append() error = %v, want ErrArchiveIsDirectory", err)
		}
	})

	t.Run("archive without extension", func(t *testing.T) {
		_, err := synth.Append(archie.NewFilePath("/tmp/out"), files)
		if !errors.Is(err, archie.ErrNoExtension) {
			t.Errorf("Append() error = %v, want ErrNoExtension", err)
		}
	})
}

func TestCommand_IsEmpty(t *testing.T) {
	if !archie.Command("").IsEmpty() || !archie.Command("  ").IsEmpty() {
		t.Error("blank command should be empty")
	}
	if archie.Command("tar -xvf a.tar").IsEmpty() {
		t.Error("command should not be empty")
	}
}
