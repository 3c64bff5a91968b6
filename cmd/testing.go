package cmd

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// mu serialises TestExecute, as the command and os.Stdout & os.Stderr are shared.
var mu sync.Mutex

// TestExecute is a helper that executes a cobra command and returns its output and error.
// Output written to the command and to os.Stdout & os.Stderr is captured.
func TestExecute(t *testing.T, command *cobra.Command, args ...string) (string, error) {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()

	buf := new(syncBuffer)
	command.SetOut(buf)
	command.SetErr(buf)
	command.SetArgs(args)

	var cmdErr error

	stdout, stderr := captureOS(t, func() {
		_, cmdErr = command.ExecuteC()
	})

	_, _ = buf.Write(stdout)
	_, _ = buf.Write(stderr)

	return buf.String(), cmdErr
}

// captureOS returns everything fn writes to os.Stdout and os.Stderr.
func captureOS(t *testing.T, fn func()) ([]byte, []byte) {
	t.Helper()

	storeStdout, storeStderr := os.Stdout, os.Stderr

	defer func() {
		os.Stdout, os.Stderr = storeStdout, storeStderr
	}()

	rOut, wOut, err := os.Pipe()
	assert.NoError(t, err)
	rErr, wErr, err := os.Pipe()
	assert.NoError(t, err)

	os.Stdout, os.Stderr = wOut, wErr

	var (
		wg             sync.WaitGroup
		stdout, stderr []byte
	)

	wg.Add(2) //nolint:mnd

	go func() {
		defer wg.Done()

		stdout, _ = io.ReadAll(rOut)
	}()
	go func() {
		defer wg.Done()

		stderr, _ = io.ReadAll(rErr)
	}()

	fn()

	assert.NoError(t, wOut.Close())
	assert.NoError(t, wErr.Close())
	wg.Wait()

	return stdout, stderr
}

// syncBuffer is a helper implementing io.Writer, used for concurrency save testing.
type syncBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.Write(p) //nolint:wrapcheck
}

func (b *syncBuffer) String() string {
	b.m.Lock()
	defer b.m.Unlock()

	return b.b.String()
}
