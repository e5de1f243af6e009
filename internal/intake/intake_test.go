package intake

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccept_Success(t *testing.T) {
	dir := t.TempDir()
	in := New(Config{TempDir: dir, MaxChars: 10000})

	sf, err := in.Accept(strings.NewReader("print(\"hi\")\n"), "hello.py")
	require.NoError(t, err)
	assert.Equal(t, "hello.py", sf.Filename)
	assert.Equal(t, "print(\"hi\")\n", sf.Content)
	assert.Equal(t, int64(12), sf.Size)
	assert.False(t, sf.Truncated)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "spool dir should be cleaned up")
}

func TestAccept_NoFile(t *testing.T) {
	in := New(Config{TempDir: t.TempDir()})

	_, err := in.Accept(nil, "hello.py")
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = in.Accept(strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestAccept_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	in := New(Config{TempDir: dir})

	_, err := in.Accept(strings.NewReader(""), "hello.py")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = in.Accept(strings.NewReader("   \n\t "), "hello.py")
	assert.ErrorIs(t, err, ErrEmptyFile)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAccept_UnsupportedType(t *testing.T) {
	in := New(Config{TempDir: t.TempDir()})

	for _, name := range []string{"image.png", "notes.txt", "archive.zip", "noext"} {
		_, err := in.Accept(strings.NewReader("content"), name)
		assert.ErrorIs(t, err, ErrUnsupportedType, name)
	}
}

func TestAccept_AllowedExtensions(t *testing.T) {
	in := New(Config{TempDir: t.TempDir()})

	for _, name := range []string{"a.js", "a.tsx", "a.py", "a.go", "a.sql", "a.rs", "a.kt", "A.PY"} {
		sf, err := in.Accept(strings.NewReader("content"), name)
		require.NoError(t, err, name)
		assert.Equal(t, name, sf.Filename)
	}
}

func TestAccept_Truncation(t *testing.T) {
	in := New(Config{TempDir: t.TempDir(), MaxChars: 5})

	sf, err := in.Accept(strings.NewReader("abcdefghij"), "long.py")
	require.NoError(t, err)
	assert.Equal(t, "abcde", sf.Content)
	assert.True(t, sf.Truncated)
	assert.Equal(t, int64(10), sf.Size, "size reflects original upload")
}

func TestAccept_TruncationRuneBoundary(t *testing.T) {
	in := New(Config{TempDir: t.TempDir(), MaxChars: 3})

	sf, err := in.Accept(strings.NewReader("héllo"), "h.py")
	require.NoError(t, err)
	assert.Equal(t, "hél", sf.Content)
	assert.True(t, sf.Truncated)
}

func TestAccept_StripsPathComponents(t *testing.T) {
	in := New(Config{TempDir: t.TempDir()})

	sf, err := in.Accept(strings.NewReader("content"), "../../etc/evil.py")
	require.NoError(t, err)
	assert.Equal(t, "evil.py", sf.Filename)
}
