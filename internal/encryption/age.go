package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"

	"filippo.io/age"

	"archie-go/internal/archie"
	"archie-go/internal/config"
)

// defaultMaxWorkFactor is the highest scrypt work factor age accepts on
// decryption unless told otherwise.
const defaultMaxWorkFactor = 22

// AgeSealer implements archie.Sealer with filippo.io/age passphrase (scrypt)
// encryption. Sealed files are regular age files and can also be opened with
// "age -d".
type AgeSealer struct {
	workFactor int
}

var _ archie.Sealer = (*AgeSealer)(nil)

// NewAgeSealer creates an AgeSealer. A zero work factor uses age's default.
func NewAgeSealer(cfg config.EncryptionConfig) *AgeSealer {
	return &AgeSealer{workFactor: cfg.WorkFactor}
}

// Encrypt reads plaintext from r and writes ciphertext sealed with passphrase to w.
func (s *AgeSealer) Encrypt(r io.Reader, w io.Writer, passphrase string) error {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}
	if s.workFactor > 0 {
		recipient.SetWorkFactor(s.workFactor)
	}

	encWriter, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Decrypt reads ciphertext from r and writes the plaintext to w.
// A wrong passphrase fails before anything is written.
func (s *AgeSealer) Decrypt(r io.Reader, w io.Writer, passphrase string) error {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt identity: %w", err)
	}
	if s.workFactor > defaultMaxWorkFactor {
		identity.SetMaxWorkFactor(s.workFactor)
	}

	decReader, err := age.Decrypt(r, identity)
	if err != nil {
		return fmt.Errorf("creating decrypted reader: %w", err)
	}
	if _, err := io.Copy(w, decReader); err != nil {
		return fmt.Errorf("decrypting data: %w", err)
	}
	return nil
}

// SealFile encrypts src into dst. dst must not exist and is removed again if
// sealing fails.
func (s *AgeSealer) SealFile(src, dst, passphrase string) error {
	return transformFile(src, dst, func(r io.Reader, w io.Writer) error {
		return s.Encrypt(r, w, passphrase)
	})
}

// UnsealFile decrypts src into dst with the same guarantees as SealFile.
func (s *AgeSealer) UnsealFile(src, dst, passphrase string) error {
	return transformFile(src, dst, func(r io.Reader, w io.Writer) error {
		return s.Decrypt(r, w, passphrase)
	})
}

func transformFile(src, dst string, transform func(io.Reader, io.Writer) error) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing destination: %w", cerr)
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(dst))
		}
	}()

	return transform(in, out)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
