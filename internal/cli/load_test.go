package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memoryConfig = `
store:
  driver: memory
rate_limit:
  enabled: false
logging:
  level: error
`

func TestLoadCmd_PrintsSummary(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(memoryConfig), 0o600))

	doc := `{"schools": [
		{"id": "hust", "code": "BKA", "name": "Hanoi University of Science and Technology", "type": "public"},
		{"id": "hust", "code": "XXX", "name": "Duplicate", "type": "public"},
		{"id": "bad", "code": "BAD", "name": "", "type": "public"}
	]}`
	docPath := filepath.Join(dir, "schools.json")
	require.NoError(t, os.WriteFile(docPath, []byte(doc), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"load", "--config", cfgPath, "--reset", docPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Imported 1 schools")
	assert.Contains(t, out.String(), "duplicate id 1, duplicate code 0, invalid 1, malformed 0")
}

func TestLoadCmd_RequiresFiles(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"load"})

	assert.Error(t, cmd.Execute())
}
