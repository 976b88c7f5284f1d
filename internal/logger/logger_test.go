package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesMemoryFileAndMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	var mirror bytes.Buffer
	l := New(path, &mirror)
	l.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	l.Log("viewer started")
	l.Logf("viewer %s: %d", "jacket", 3)

	want := []string{
		"[2026-03-04 05:06:07] viewer started",
		"[2026-03-04 05:06:07] viewer jacket: 3",
	}
	assert.Equal(t, want, l.Lines())
	assert.Equal(t, strings.Join(want, "\n")+"\n", mirror.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, "\n")+"\n", string(data))
}

func TestLinesIsACopy(t *testing.T) {
	l := Discard()
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.True(t, strings.HasSuffix(l.Lines()[0], "] a"))
}

func TestConcurrentLog(t *testing.T) {
	l := Discard()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Log("line")
		}()
	}
	wg.Wait()
	assert.Len(t, l.Lines(), 20)
}

func TestTail(t *testing.T) {
	l := Discard()
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	assert.Empty(t, l.Tail(3, 0))

	for _, s := range []string{"one", "two", "three", "a much longer line"} {
		l.Log(s)
	}
	assert.Equal(t, []string{
		"[2026-01-02 03:04:05] three",
		"[2026-01-02 03:04:05] a much longer line",
	}, l.Tail(2, 0))
	assert.Equal(t, []string{"[2026-01-02 03:04:05] a much..."}, l.Tail(1, 31))
	assert.Len(t, l.Tail(10, 0), 4)
}
