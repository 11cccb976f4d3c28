package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTlox compiles the tlox binary into a fresh temp directory for
// the calling test, the same black-box approach the scanner/parser/resolver/
// interpreter unit tests can't reach: end-to-end exit-code behavior
// only exists at the process boundary.
func buildTlox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "tlox")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return bin
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFileSuccessExitsZero(t *testing.T) {
	bin := buildTlox(t)
	script := writeScript(t, `print "hello";`)

	var stdout bytes.Buffer
	cmd := exec.Command(bin, script)
	cmd.Stdout = &stdout
	err := cmd.Run()
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestRunFileParseErrorExits65(t *testing.T) {
	bin := buildTlox(t)
	script := writeScript(t, `print;`)

	cmd := exec.Command(bin, script)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok)
	assert.Equal(t, 65, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "Expect expression.")
}

func TestRunFileUndefinedVariableExits70(t *testing.T) {
	bin := buildTlox(t)
	script := writeScript(t, `print undeclared;`)

	cmd := exec.Command(bin, script)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok)
	assert.Equal(t, 70, exitErr.ExitCode())
	assert.Contains(t, stderr.String(), "Undefined variable 'undeclared'.")
}

func TestRunFileClosureScenario(t *testing.T) {
	bin := buildTlox(t)
	script := writeScript(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)

	var stdout bytes.Buffer
	cmd := exec.Command(bin, script)
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())
	assert.Equal(t, "1\n2\n", stdout.String())
}
