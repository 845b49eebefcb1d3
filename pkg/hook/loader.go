package hook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Mause/tuya-graphing/pkg/errors"
)

// scriptExtension is the only script format the executor understands.
const scriptExtension = ".tengo"

// LoadScripts registers every <id>.tengo file in dir with the executor. A
// missing directory is fine; the manifest may reference hooks that only
// exist upstream.
func LoadScripts(executor Executor, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read hook script directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != scriptExtension {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "error reading hook script %s", path)
		}

		id := strings.TrimSuffix(entry.Name(), scriptExtension)
		if err := executor.AddHook(Hook{ID: id, Content: string(content)}); err != nil {
			return errors.Wrapf(err, "error adding hook %s", id)
		}
	}

	return nil
}

// ScriptTemplate generates a starting point for a new hook script.
func ScriptTemplate(id string) string {
	return `// Hook: ` + id + `
// Runs at every pipeline stage; branch on the stage variable.
// Available variables:
// - hookID: string - this hook's manifest id
// - stage: string - one of ` + stageList() + `
// - args: array - argument list from the manifest entry
// - deviceCount: int - number of devices in the current run
// - reportDir: string - directory rendered reports are written to
// - dumpPath: string - path of the raw data dump

// Example: fail the export when no devices reported data
/*
err := ""
if stage == "pre-export" && deviceCount == 0 {
    err = "no devices to export"
}
*/`
}

func stageList() string {
	stages := Stages()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
