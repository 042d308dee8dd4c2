package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"archie-go/internal/archie"
)

const menuText = `
Choose an option:
1. Extract archive.
2. Zip file or directory.
3. Zip and secure with password.
4. Tar file or directory.
5. Add to existing archive.
6. Extract all archives in a specific directory.
7. Extract all archives in the current directory.
8. Seal archive with a passphrase.
0. Exit program.
`

const (
	archivePrompt = "Provide archive path (e.g. /some/directory/my_file.zip):"
	pathPrompt    = "Provide file or directory path (e.g. /some/directory/my_file.png):"
	dirPrompt     = "Provide directory path (e.g. /some/directory):"
)

var errInvalidOption = errors.New("invalid option: provide a valid number")

// menu is the interactive loop started when archie runs without arguments.
// It repeats until an operation succeeds, 0 is chosen or input ends.
type menu struct {
	ops    operator
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
	dryRun bool

	// readSecret reads a passphrase; nil reads a plain line from in.
	readSecret func(prompt string) (string, error)
}

func newMenu(ops operator, in io.Reader, out, errOut io.Writer) *menu {
	return &menu{ops: ops, in: bufio.NewScanner(in), out: out, errOut: errOut}
}

func (m *menu) run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, menuText)

		line, err := m.readLine()
		if err != nil {
			return ignoreEOF(err)
		}
		option, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(m.errOut, "Invalid option. A number was expected.")
			continue
		}
		if option == 0 {
			return nil
		}

		if err := m.handle(ctx, option); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(m.errOut, err)
			continue
		}
		return nil
	}
}

func (m *menu) handle(ctx context.Context, option int) error {
	switch option {
	case 1:
		return m.single(ctx, archie.OpExtract, pathPrompt)
	case 2:
		return m.single(ctx, archie.OpZip, pathPrompt)
	case 3:
		return m.single(ctx, archie.OpZipEncrypted, pathPrompt)
	case 4:
		return m.single(ctx, archie.OpTar, pathPrompt)
	case 5:
		archive, err := m.ask(archivePrompt)
		if err != nil {
			return err
		}
		files, err := m.ask(pathPrompt)
		if err != nil {
			return err
		}
		return runOperation(ctx, m.out, m.ops, archie.OpAppend, archive, files, m.dryRun)
	case 6:
		return m.single(ctx, archie.OpExtractAll, dirPrompt)
	case 7:
		return runOperation(ctx, m.out, m.ops, archie.OpExtractAll, ".", "", m.dryRun)
	case 8:
		return m.seal()
	default:
		return errInvalidOption
	}
}

func (m *menu) single(ctx context.Context, op archie.Operation, prompt string) error {
	path, err := m.ask(prompt)
	if err != nil {
		return err
	}
	return runOperation(ctx, m.out, m.ops, op, path, "", m.dryRun)
}

func (m *menu) seal() error {
	archive, err := m.ask(archivePrompt)
	if err != nil {
		return err
	}

	var passphrase string
	if m.readSecret != nil {
		passphrase, err = m.readSecret("Passphrase: ")
	} else {
		passphrase, err = m.ask("Passphrase:")
		if err == nil {
			passphrase, err = nonEmpty(passphrase)
		}
	}
	if err != nil {
		return err
	}

	if m.dryRun {
		fmt.Fprintf(m.out, "Would seal %s\n", archive)
		return nil
	}
	sealed, err := m.ops.Seal(archive, passphrase)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Sealed archive: %s\n", sealed)
	return nil
}

func (m *menu) ask(prompt string) (string, error) {
	fmt.Fprintln(m.out, prompt)
	return m.readLine()
}

func (m *menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
