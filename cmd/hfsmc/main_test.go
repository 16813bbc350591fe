package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ovenYAML = `
name: oven
initial: A
states:
  - name: A
    initial: B
    enter: [foo]
    children:
      - name: B
        transitions:
          - event: X
            next: final
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunEmitsPlantUML(t *testing.T) {
	path := writeTemp(t, "oven.yaml", ovenYAML)
	var stdout, stderr bytes.Buffer
	err := run([]string{path}, &stdout, &stderr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "@startuml"))
	assert.Contains(t, stdout.String(), "entry / foo")
}

func TestRunRejectsUnknownTarget(t *testing.T) {
	path := writeTemp(t, "oven.yaml", ovenYAML)
	var stdout, stderr bytes.Buffer
	err := run([]string{"-target=csharp", path}, &stdout, &stderr)
	require.Error(t, err)
	var unimpl *Unimplemented
	require.ErrorAs(t, err, &unimpl)
	assert.Equal(t, "csharp", unimpl.Target)
}

func TestRunRejectsMissingPrefixForUnnamedSpec(t *testing.T) {
	path := writeTemp(t, "anon.yaml", strings.Replace(ovenYAML, "name: oven\n", "", 1))
	var stdout, stderr bytes.Buffer
	err := run([]string{path}, &stdout, &stderr)
	require.Error(t, err)
}

func TestRunAcceptsExplicitPrefixForUnnamedSpec(t *testing.T) {
	path := writeTemp(t, "anon.yaml", strings.Replace(ovenYAML, "name: oven\n", "", 1))
	var stdout, stderr bytes.Buffer
	err := run([]string{"-prefix=anon", path}, &stdout, &stderr)
	require.NoError(t, err)
}

func TestRunRejectsBadNameGrammar(t *testing.T) {
	path := writeTemp(t, "oven.yaml", ovenYAML)
	var stdout, stderr bytes.Buffer
	err := run([]string{"-event-name=^NOPE$", path}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event name")
}

func TestRunRejectsUnreadableFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	require.Error(t, err)
}

func TestRunRequiresExactlyOneArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{}, &stdout, &stderr)
	require.Error(t, err)
}
