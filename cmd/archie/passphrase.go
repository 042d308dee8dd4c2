package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errEmptyPassphrase = errors.New("passphrase must not be empty")

// passphraseReader prompts for passphrases. On a terminal input is not echoed;
// otherwise one line per passphrase is read from in.
type passphraseReader struct {
	in  io.Reader
	out io.Writer
	buf *bufio.Reader
}

func newPassphraseReader(in io.Reader, out io.Writer) *passphraseReader {
	return &passphraseReader{in: in, out: out}
}

func (r *passphraseReader) read(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(r.out)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return nonEmpty(string(b))
	}

	if r.buf == nil {
		r.buf = bufio.NewReader(r.in)
	}
	line, err := r.buf.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return nonEmpty(strings.TrimRight(line, "\r\n"))
}

// readNew asks twice and fails when the entries differ.
func (r *passphraseReader) readNew() (string, error) {
	first, err := r.read("Passphrase: ")
	if err != nil {
		return "", err
	}
	second, err := r.read("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}

func nonEmpty(s string) (string, error) {
	if s == "" {
		return "", errEmptyPassphrase
	}
	return s, nil
}
