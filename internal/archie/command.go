package archie

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	zipExt = ".zip"
	tarExt = ".tar"

	// commandSeparator chains bulk extractions so the first failure stops the rest.
	commandSeparator = " && "
)

// Command is a complete shell command line. An empty Command does nothing.
type Command string

func (c Command) String() string { return string(c) }

// IsEmpty reports whether there is nothing to run.
func (c Command) IsEmpty() bool { return strings.TrimSpace(string(c)) == "" }

// Synthesizer builds command lines for resolved paths. The zero value uses
// PlainNamer, writes archives into the working directory and filters nothing
// during bulk discovery.
type Synthesizer struct {
	// Namer picks archive basenames. Nil means PlainNamer.
	Namer Namer
	// OutputDir is prefixed to new archive names when set.
	OutputDir string
	// Ignore excludes entries from ExtractAll. Nil keeps every archive.
	Ignore NameFilter
}

// NewSynthesizer creates a Synthesizer. A nil namer falls back to PlainNamer.
func NewSynthesizer(namer Namer, outputDir string, ignore NameFilter) *Synthesizer {
	return &Synthesizer{Namer: namer, OutputDir: outputDir, Ignore: ignore}
}

// Extract builds "tar -xvf <path>". Directories are always passed in their
// wildcard-expanded form.
func (s *Synthesizer) Extract(p *Path) (Command, error) {
	target, err := quotePath(p)
	if err != nil {
		return "", err
	}
	return Command("tar -xvf " + target), nil
}

// Zip builds "zip -r <name>.zip <path>". withPassword adds zip's 'e' flag, which
// makes zip prompt for the password itself.
func (s *Synthesizer) Zip(p *Path, withPassword bool) (Command, error) {
	archive, err := s.archiveName(p, zipExt)
	if err != nil {
		return "", err
	}
	target, err := quotePath(p)
	if err != nil {
		return "", err
	}

	flags := "-r"
	if withPassword {
		flags += "e"
	}
	return Command(fmt.Sprintf("zip %s %s %s", flags, archive, target)), nil
}

// Tar builds "tar -cf <name>.tar <path>".
func (s *Synthesizer) Tar(p *Path) (Command, error) {
	archive, err := s.archiveName(p, tarExt)
	if err != nil {
		return "", err
	}
	target, err := quotePath(p)
	if err != nil {
		return "", err
	}
	return Command(fmt.Sprintf("tar -cf %s %s", archive, target)), nil
}

// Append adds files to an existing archive. Zip archives are updated with
// "zip -ur"; every other format falls back to tar's append mode, which fails
// at run time for formats tar cannot append to.
func (s *Synthesizer) Append(archive *Path, files *Path) (Command, error) {
	if archive.IsDir() {
		return "", pathError(archive.Base(), ErrArchiveIsDirectory)
	}
	ext, ok := MatchArchiveExtension(archive.Base())
	if !ok {
		var err error
		if ext, err = ExtensionOf(archive.Base()); err != nil {
			return "", err
		}
	}

	archiveArg, err := quoteArg(archive.Base())
	if err != nil {
		return "", err
	}
	target, err := quotePath(files)
	if err != nil {
		return "", err
	}

	if ext == zipExt {
		return Command(fmt.Sprintf("zip -ur %s %s", archiveArg, target)), nil
	}
	return Command(fmt.Sprintf("tar -rv --append --file=%s %s", archiveArg, target)), nil
}

// ExtractAll lists dir and chains an Extract for every recognized archive in
// it, in listing order. Any wildcard on dir is ignored. A directory without
// archives yields an empty Command and no error.
func (s *Synthesizer) ExtractAll(fsmgr FilesystemManager, dir *Path) (Command, error) {
	names, err := DiscoverArchives(fsmgr, dir, s.Ignore)
	if err != nil {
		return "", err
	}

	cmds := make([]string, 0, len(names))
	for _, name := range names {
		cmd, err := s.Extract(NewFilePath(joinPath(dir.Base(), name)))
		if err != nil {
			return "", err
		}
		cmds = append(cmds, cmd.String())
	}
	return Command(strings.Join(cmds, commandSeparator)), nil
}

func (s *Synthesizer) archiveName(p *Path, ext string) (string, error) {
	namer := s.Namer
	if namer == nil {
		namer = PlainNamer{}
	}
	base, err := namer.ArchiveBasename(p, ext)
	if err != nil {
		return "", err
	}

	name := base + ext
	if s.OutputDir != "" {
		name = joinPath(s.OutputDir, name)
	}
	return quoteArg(name)
}

// quotePath quotes a path for the shell. The wildcard segment of a directory
// stays unquoted around each '*' so the shell still expands it.
func quotePath(p *Path) (string, error) {
	base, err := quoteArg(p.Base())
	if err != nil {
		return "", err
	}
	if !p.IsDir() {
		return base, nil
	}

	glob, err := quoteGlob(p.selector())
	if err != nil {
		return "", err
	}
	return joinPath(base, glob), nil
}

func quoteGlob(pattern string) (string, error) {
	parts := strings.Split(pattern, wildcard)
	for i, part := range parts {
		if part == "" {
			continue
		}
		quoted, err := quoteArg(part)
		if err != nil {
			return "", err
		}
		parts[i] = quoted
	}
	return strings.Join(parts, wildcard), nil
}

func quoteArg(s string) (string, error) {
	quoted, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return "", &PathError{Path: s, Err: ErrUnquotablePath, Cause: err}
	}
	return quoted, nil
}
