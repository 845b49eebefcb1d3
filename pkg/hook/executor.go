package hook

import (
	"fmt"
	"sync"

	"github.com/Mause/tuya-graphing/pkg/errors"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor runs hook scripts written in Tengo.
type TengoExecutor struct {
	scripts map[string]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates an executor with no scripts registered.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[string]string),
	}
}

// Execute runs the script registered under id at the given stage. A missing
// script is not an error; manifest entries without a local script are
// skipped.
func (e *TengoExecutor) Execute(id string, stage Stage, args []string, ctx Context) error {
	e.mutex.RLock()
	script, exists := e.scripts[id]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times"))

	scriptArgs := make([]interface{}, len(args))
	for i, a := range args {
		scriptArgs[i] = a
	}

	for name, value := range map[string]interface{}{
		"hookID":      id,
		"stage":       string(stage),
		"args":        scriptArgs,
		"deviceCount": ctx.DeviceCount,
		"reportDir":   ctx.ReportDir,
		"dumpPath":    ctx.DumpPath,
	} {
		if err := instance.Add(name, value); err != nil {
			return fmt.Errorf("failed to add %s to script: %w", name, err)
		}
	}
	for k, v := range ctx.Vars {
		if err := instance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := instance.Run()
	if err != nil {
		return fmt.Errorf("%s at %s: %w: %w", id, stage, errors.ErrHookExecution, err)
	}

	// Scripts report failure by assigning to err.
	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w", errors.ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %s", errors.ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddHook registers a script under its id.
func (e *TengoExecutor) AddHook(hook Hook) error {
	if hook.ID == "" {
		return errors.Wrap(errors.ErrHookLoad, "hook id is required")
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hook.ID] = hook.Content
	return nil
}

// RemoveHook unregisters the script with the given id.
func (e *TengoExecutor) RemoveHook(id string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, id)
	return nil
}

// HasHook reports whether a script is registered under id.
func (e *TengoExecutor) HasHook(id string) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[id]
	return exists
}
