package testutil

import (
	"bytes"
	"errors"
	"os"

	"archie-go/internal/archie"
)

var sealedMagic = []byte("sealed:")

// StubSealer "encrypts" by prefixing the content with a marker and the
// passphrase. It works on real files so it can be used with t.TempDir.
type StubSealer struct{}

func (StubSealer) SealFile(src, dst, passphrase string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	out := append(append(append([]byte{}, sealedMagic...), passphrase+"\n"...), data...)
	return os.WriteFile(dst, out, 0o600)
}

func (StubSealer) UnsealFile(src, dst, passphrase string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	header := append(append([]byte{}, sealedMagic...), passphrase+"\n"...)
	if !bytes.HasPrefix(data, header) {
		return errors.New("wrong passphrase")
	}
	return os.WriteFile(dst, data[len(header):], 0o600)
}

var _ archie.Sealer = StubSealer{}
