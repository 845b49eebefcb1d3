package hook

import (
	"testing"

	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMissingScriptIsNoop(t *testing.T) {
	e := NewTengoExecutor()
	assert.NoError(t, e.Execute("unknown", PreFetch, nil, Context{}))
}

func TestExecuteSeesContextVariables(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{
		ID: "guard",
		Content: `
err := ""
if stage != "pre-export" { err = "wrong stage: " + stage }
if deviceCount != 3 { err = "wrong device count" }
if reportDir != "/tmp/reports" { err = "wrong report dir" }
if hookID != "guard" { err = "wrong hook id" }
`,
	}))

	ctx := Context{DeviceCount: 3, ReportDir: "/tmp/reports", DumpPath: "/tmp/data.json"}
	assert.NoError(t, e.Execute("guard", PreExport, nil, ctx))

	err := e.Execute("guard", PostFetch, nil, ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Contains(t, err.Error(), "wrong stage: post-fetch")
}

func TestExecuteSeesArgs(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{
		ID: "argcheck",
		Content: `
err := ""
if len(args) != 2 || args[0] != "--fix" { err = "bad args" }
`,
	}))

	assert.NoError(t, e.Execute("argcheck", PreFetch, []string{"--fix", "--verbose"}, Context{}))
	assert.Error(t, e.Execute("argcheck", PreFetch, nil, Context{}))
}

func TestExecuteSeesCustomVars(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{
		ID:      "vars",
		Content: `err := ""; if window != "today" { err = "missing var" }`,
	}))

	ctx := Context{Vars: map[string]interface{}{"window": "today"}}
	assert.NoError(t, e.Execute("vars", PreFetch, nil, ctx))
}

func TestExecuteCompileError(t *testing.T) {
	e := NewTengoExecutor()
	require.NoError(t, e.AddHook(Hook{ID: "broken", Content: `if {`}))

	err := e.Execute("broken", PreFetch, nil, Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookExecution)
}

func TestAddRemoveHasHook(t *testing.T) {
	e := NewTengoExecutor()

	assert.Error(t, e.AddHook(Hook{Content: "x := 1"}), "empty id rejected")

	require.NoError(t, e.AddHook(Hook{ID: "a", Content: "x := 1"}))
	assert.True(t, e.HasHook("a"))

	require.NoError(t, e.RemoveHook("a"))
	assert.False(t, e.HasHook("a"))
}
