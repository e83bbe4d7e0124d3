package migration

import (
	"context"
	"fmt"

	"github.com/gl2gh/gl2gh/pkg/logger"
	"github.com/gl2gh/gl2gh/pkg/repo"
)

// Result accumulates per-repository outcomes for one run.
type Result struct {
	Total     int
	Succeeded int
	// Failed holds display names of repositories that failed, in processing
	// order, so a rerun can be limited to exactly these.
	Failed []string
	// Provisioned holds the destination slugs of fully migrated repositories.
	Provisioned []string
}

// ExitCode is the sole machine-readable outcome of a run: 0 only when every
// selected repository succeeded and the selection was not empty.
func (r Result) ExitCode() int {
	if r.Succeeded == r.Total && r.Total > 0 {
		return 0
	}
	return 1
}

// Orchestrator drives the provision-then-transfer pipeline across a selected
// set of repositories, one at a time, in the order supplied. It holds no
// state across runs.
type Orchestrator struct {
	provisioner *Provisioner
	strategy    Strategy
}

func NewOrchestrator(provisioner *Provisioner, strategy Strategy) *Orchestrator {
	return &Orchestrator{provisioner: provisioner, strategy: strategy}
}

// Run migrates each repository and records its outcome. A failure is recorded
// against that repository only, the batch always moves on to the next one. A
// repository is transferred only after its destination is confirmed usable.
func (o *Orchestrator) Run(ctx context.Context, repos []repo.Repository) Result {
	result := Result{Total: len(repos)}

	for i, r := range repos {
		if ctx.Err() != nil {
			logger.Warn("Migration interrupted, remaining repositories were not attempted", "remaining", len(repos)-i)
			break
		}

		destName := r.SafeName()
		logger.Info(fmt.Sprintf("[%d/%d] Migrating repository", i+1, result.Total),
			"name", r.Name, "dest", destName, "mode", o.strategy.Name())
		if r.HasCI {
			logger.Debug("Source project has a CI configuration, pipelines are not migrated", "name", r.Name)
		}

		if !o.provisioner.EnsureCreated(ctx, destName, r.Description, r.Private()) {
			result.Failed = append(result.Failed, r.Name)
			continue
		}

		if err := o.strategy.Transfer(ctx, r, destName); err != nil {
			logger.Error("Repository transfer failed", "name", r.Name, "error", err)
			result.Failed = append(result.Failed, r.Name)
			continue
		}

		result.Succeeded++
		result.Provisioned = append(result.Provisioned, destName)
		logger.Info("Repository migrated", "name", r.Name, "dest", destName)
	}

	return result
}
