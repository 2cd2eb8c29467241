// Package hooks runs maintainer scripts bundled with packages. Scripts
// are Tengo programs; the runner resolves the script file from the
// package's install state, binds the package context into the script,
// and maps script failures onto the error taxonomy.
package hooks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pika-pm/pika/internal/logger"
	"github.com/pika-pm/pika/pkg/config"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
)

// ScriptType names a maintainer script slot.
type ScriptType string

// Supported maintainer scripts.
const (
	PreInstall  ScriptType = "preinst"
	PostInstall ScriptType = "postinst"
	PreRemove   ScriptType = "prerm"
	PostRemove  ScriptType = "postrm"
)

// Runner locates and executes maintainer scripts.
type Runner struct {
	cfg *config.Config
}

// NewRunner creates a Runner bound to the given configuration.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// scriptPath resolves where the script for a package lives: installed
// packages keep their scripts under the destination's info directory,
// packages still unpacking carry them in the temporary unpack directory.
func (r *Runner) scriptPath(pkg *model.Package, script ScriptType) (string, error) {
	if pkg.Status == model.StatusNotInstalled || pkg.Dest == nil {
		if pkg.TmpUnpackDir == "" {
			return "", errors.Wrapf(errors.ErrHookExecution,
				"package %s has no unpack directory for script %s", pkg.Name, script)
		}
		return filepath.Join(pkg.TmpUnpackDir, string(script)), nil
	}
	return filepath.Join(pkg.Dest.InfoDir, pkg.Name+"."+string(script)), nil
}

// Run executes one maintainer script for a package, passing the action
// argument through to the script. A missing script is a success. Under
// an offline root scripts are skipped, except post-install when the
// force flag asks for it; in no-action mode nothing runs.
func (r *Runner) Run(ctx context.Context, pkg *model.Package, script ScriptType, action string) error {
	if r.cfg.Settings.NoAction {
		return nil
	}

	if r.cfg.Settings.OfflineRoot != "" {
		if script != PostInstall || !r.cfg.Settings.ForcePostinstall {
			logger.Info("Offline root mode: not running maintainer script", logger.Fields{
				"package": pkg.Name,
				"script":  string(script),
			})
			return nil
		}
		logger.Info("Running post-install script despite offline root", logger.Fields{
			"package": pkg.Name,
		})
	}

	path, err := r.scriptPath(pkg, script)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read script %s", path)
	}

	logger.Debug("Running maintainer script", logger.Fields{
		"package": pkg.Name,
		"script":  string(script),
		"action":  action,
	})

	if err := r.execute(ctx, pkg, script, action, source); err != nil {
		logger.Errorf("%s script returned status for package %s: %v", script, pkg.Name, err)
		return err
	}
	return nil
}
