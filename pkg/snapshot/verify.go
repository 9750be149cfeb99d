package snapshot

import (
	"errors"
	"io"
	"os"

	"github.com/DrMaserLie/temporium/pkg/codec"
)

// Result is the closed set of mutually exclusive verification
// outcomes. It is data, not a thrown fault: callers branch on it.
type Result int

const (
	OK Result = iota
	FileNotFound
	InvalidMagic
	InvalidVersion
	HashMismatch
	ReadError
)

// String returns a short identifier for the outcome.
func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case FileNotFound:
		return "file-not-found"
	case InvalidMagic:
		return "invalid-magic"
	case InvalidVersion:
		return "invalid-version"
	case HashMismatch:
		return "hash-mismatch"
	case ReadError:
		return "read-error"
	default:
		return "unknown"
	}
}

// Text returns the user-facing message for the outcome.
func (r Result) Text() string {
	switch r {
	case OK:
		return "file is valid"
	case FileNotFound:
		return "file not found"
	case InvalidMagic:
		return "invalid file format (not a Temporium snapshot)"
	case InvalidVersion:
		return "unsupported snapshot format version"
	case HashMismatch:
		return "file is corrupted or modified (checksum mismatch)"
	case ReadError:
		return "error reading file"
	default:
		return "unknown verification error"
	}
}

// Err returns nil for OK and an error carrying the outcome's text for
// every other result.
func (r Result) Err() error {
	if r == OK {
		return nil
	}
	return errors.New(r.Text())
}

// Verify checks a snapshot's structural and cryptographic integrity
// and classifies the outcome without mutating anything. The checks run
// as a linear, non-retrying state machine: open, header, magic,
// version, payload, digest. The magic gate runs before the version
// check, so a foreign file never reaches a version comparison. Verify
// is idempotent and releases the file handle on every exit path.
func Verify(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return FileNotFound
	}
	defer f.Close()

	hdr := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, hdr); err != nil {
		return ReadError
	}
	h := DecodeHeader(hdr)

	if h.Magic != Magic {
		return InvalidMagic
	}

	layout, ok := codec.LayoutFor(h.Version)
	if !ok {
		return InvalidVersion
	}

	// Payload length follows the layout the header declares, so legacy
	// snapshots with their shorter record shape verify cleanly. The
	// declared count is untrusted: a forged header must not size an
	// allocation the file cannot back.
	info, err := f.Stat()
	if err != nil {
		return ReadError
	}
	need := int64(h.RecordCount) * int64(layout.Size)
	if need > info.Size()-HeaderSize {
		return ReadError
	}
	payload := make([]byte, int(need))
	if _, err := io.ReadFull(f, payload); err != nil {
		return ReadError
	}

	if !h.HashMatches(PayloadDigest(payload)) {
		return HashMismatch
	}
	return OK
}
