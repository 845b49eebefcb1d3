package hook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/Mause/tuya-graphing/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ruff.tengo"), []byte(`x := 1`), fsutil.FileModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mypy.tengo"), []byte(`y := 2`), fsutil.FileModeDefault))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), fsutil.FileModeDefault))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir.tengo"), fsutil.DirModeDefault))

	e := NewTengoExecutor()
	require.NoError(t, LoadScripts(e, dir))

	assert.True(t, e.HasHook("ruff"))
	assert.True(t, e.HasHook("mypy"))
	assert.False(t, e.HasHook("notes"))
	assert.False(t, e.HasHook("subdir"))
}

func TestLoadScriptsMissingDirIsFine(t *testing.T) {
	e := NewTengoExecutor()
	assert.NoError(t, LoadScripts(e, filepath.Join(t.TempDir(), "missing")))
}

func TestScriptTemplate(t *testing.T) {
	tmpl := ScriptTemplate("ruff")
	assert.Contains(t, tmpl, "Hook: ruff")
	assert.Contains(t, tmpl, "pre-fetch, post-fetch, pre-export, post-export")
}

// The commented example in the template must actually work when uncommented:
// err has to be declared at top level, an := inside the if block would stay
// block-scoped and the failure would be swallowed.
func TestScriptTemplateExampleReportsFailure(t *testing.T) {
	tmpl := ScriptTemplate("guard")

	start := strings.Index(tmpl, "/*")
	end := strings.Index(tmpl, "*/")
	require.True(t, start >= 0 && end > start, "template should carry a commented example")
	example := tmpl[start+2 : end]

	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{ID: "guard", Content: example}))

	err := e.Execute("guard", PreExport, nil, Context{DeviceCount: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Contains(t, err.Error(), "no devices to export")

	assert.NoError(t, e.Execute("guard", PreExport, nil, Context{DeviceCount: 2}))
}
