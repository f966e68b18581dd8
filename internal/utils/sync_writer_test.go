package utils

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncWriter_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	w := NewSyncWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = w.Write([]byte("line\n"))
		}()
	}
	wg.Wait()

	assert.Equal(t, strings.Repeat("line\n", 20), buf.String())
}

func TestSyncWriter_Wrapping(t *testing.T) {
	var buf bytes.Buffer
	w := NewSyncWriter(&buf)

	assert.Same(t, w, NewSyncWriter(w))
	assert.Same(t, &buf, w.Unwrap())
}
