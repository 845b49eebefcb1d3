package hook

import (
	"github.com/Mause/tuya-graphing/internal/logger"
)

// Runner executes the manifest's hooks at pipeline stages, in manifest
// order. Hooks without a registered script are skipped.
type Runner struct {
	manifest *Manifest
	executor Executor
}

// NewRunner binds a loaded manifest to an executor. A nil manifest yields a
// runner that does nothing.
func NewRunner(manifest *Manifest, executor Executor) *Runner {
	return &Runner{manifest: manifest, executor: executor}
}

// RunStage runs every scripted hook at the given stage. The first failing
// hook aborts the stage.
func (r *Runner) RunStage(stage Stage, ctx Context) error {
	if r.manifest == nil || r.executor == nil {
		return nil
	}

	for _, entry := range r.manifest.Repos {
		for _, h := range entry.Hooks {
			if !r.executor.HasHook(h.ID) {
				continue
			}
			logger.Debug("Running hook", logger.Fields{"hook": h.ID, "stage": string(stage)})
			if err := r.executor.Execute(h.ID, stage, h.Args, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
