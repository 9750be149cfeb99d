package snapshot

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrMaserLie/temporium/pkg/codec"
)

// writeSnapshot writes a fresh valid snapshot and returns its path.
func writeSnapshot(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "verify.tmprm")
	require.NoError(t, NewWriter().Write(path, sampleGames()))
	return path
}

// writeLegacySnapshot hand-builds a version 1 snapshot: a sealed header
// declaring the legacy version over legacy-width records.
func writeLegacySnapshot(t *testing.T, dir string) string {
	t.Helper()

	c := codec.NewGameCodec()
	games := sampleGames()
	payload := make([]byte, 0, len(games)*codec.LegacyRecordSize)
	for i := range games {
		payload = append(payload, c.EncodeLegacy(&games[i])...)
	}

	h := NewHeader(uint32(len(games)), PayloadDigest(payload))
	h.Version = codec.VersionLegacy

	path := filepath.Join(dir, "legacy.tmprm")
	require.NoError(t, os.WriteFile(path, append(h.Encode(), payload...), 0644))
	return path
}

func TestVerify_MissingFile(t *testing.T) {
	assert.Equal(t, FileNotFound, Verify("/definitely/not/here.tmprm"))
}

func TestVerify_ForeignFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "notes.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, HeaderSize+100), 0644))

	assert.Equal(t, InvalidMagic, Verify(path))
}

func TestVerify_MagicGateBeforeVersion(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := writeSnapshot(t, tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Break both the magic and the version. The magic gate must win:
	// a foreign file never reaches a version comparison.
	binary.LittleEndian.PutUint32(data[0:], 0xDEADBEEF)
	binary.LittleEndian.PutUint16(data[4:], 9999)
	require.NoError(t, os.WriteFile(path, data, 0644))

	assert.Equal(t, InvalidMagic, Verify(path))
}

func TestVerify_UnsupportedVersion(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := writeSnapshot(t, tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	binary.LittleEndian.PutUint16(data[4:], 9999)
	require.NoError(t, os.WriteFile(path, data, 0644))

	assert.Equal(t, InvalidVersion, Verify(path))
}

func TestVerify_TamperedPayload(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := writeSnapshot(t, tmpDir)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	// Flipping any single payload byte must surface as HashMismatch,
	// including bytes deep in zero padding.
	offsets := []int{
		HeaderSize,
		HeaderSize + 5,
		HeaderSize + codec.RecordSize/2,
		len(original) - 1,
	}
	for _, off := range offsets {
		data := make([]byte, len(original))
		copy(data, original)
		data[off] ^= 0xFF
		require.NoError(t, os.WriteFile(path, data, 0644))

		assert.Equal(t, HashMismatch, Verify(path), "tamper at offset %d", off)
	}
}

func TestVerify_TamperedHashSlot(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := writeSnapshot(t, tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Corruption in the hash slot's zero padding also fails: the
	// comparison spans the slot's full width.
	data[10+HashSlotSize-1] = 'x'
	require.NoError(t, os.WriteFile(path, data, 0644))

	assert.Equal(t, HashMismatch, Verify(path))
}

func TestVerify_TruncatedFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := writeSnapshot(t, tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		short := filepath.Join(tmpDir, "short_header.tmprm")
		require.NoError(t, os.WriteFile(short, data[:HeaderSize-10], 0644))
		assert.Equal(t, ReadError, Verify(short))
	})

	t.Run("truncated payload", func(t *testing.T) {
		short := filepath.Join(tmpDir, "short_payload.tmprm")
		require.NoError(t, os.WriteFile(short, data[:len(data)-50], 0644))
		assert.Equal(t, ReadError, Verify(short))
	})

	t.Run("empty file", func(t *testing.T) {
		empty := filepath.Join(tmpDir, "empty_file.tmprm")
		require.NoError(t, os.WriteFile(empty, nil, 0644))
		assert.Equal(t, ReadError, Verify(empty))
	})
}

func TestVerify_ForgedRecordCount(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	// A 100-byte file whose header claims the maximum record count
	// must classify as ReadError, not drive a multi-terabyte
	// allocation off the forged value.
	t.Run("bare header claiming max count", func(t *testing.T) {
		h := NewHeader(0xFFFFFFFF, PayloadDigest(nil))
		path := filepath.Join(tmpDir, "forged_max.tmprm")
		require.NoError(t, os.WriteFile(path, h.Encode(), 0644))
		assert.Equal(t, ReadError, Verify(path))
	})

	t.Run("count exceeds payload on disk", func(t *testing.T) {
		path := writeSnapshot(t, tmpDir)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		binary.LittleEndian.PutUint32(data[6:], uint32(len(sampleGames())+1))
		require.NoError(t, os.WriteFile(path, data, 0644))
		assert.Equal(t, ReadError, Verify(path))
	})
}

func TestVerify_LegacySnapshot(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	// A well-formed legacy file must verify clean: the payload is sized
	// by the version the header declares, not the current record shape.
	path := writeLegacySnapshot(t, tmpDir)
	assert.Equal(t, OK, Verify(path))
}

func TestVerify_Idempotent(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "temporium_verify")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := writeSnapshot(t, tmpDir)
	first := Verify(path)
	second := Verify(path)
	assert.Equal(t, first, second)
	assert.Equal(t, OK, second)

	// Verify must not have touched the file.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, OK, Verify(path))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, after)
}

func TestResult_Err(t *testing.T) {
	assert.NoError(t, OK.Err())

	for _, r := range []Result{FileNotFound, InvalidMagic, InvalidVersion, HashMismatch, ReadError} {
		err := r.Err()
		require.Error(t, err, "result %s", r)
		assert.Equal(t, r.Text(), err.Error())
	}
}

func TestPayloadDigest(t *testing.T) {
	assert.Equal(t, emptyPayloadDigest, PayloadDigest(nil))
	assert.Equal(t, emptyPayloadDigest, PayloadDigest([]byte{}))

	// Deterministic and input sensitive.
	a := PayloadDigest([]byte("payload"))
	assert.Equal(t, a, PayloadDigest([]byte("payload")))
	assert.NotEqual(t, a, PayloadDigest([]byte("payloae")))
	assert.Len(t, a, 64)
}
