package hooks

import (
	"context"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/pika-pm/pika/pkg/errors"
	"github.com/pika-pm/pika/pkg/model"
)

// execute compiles and runs one script with the package context bound
// in. Scripts signal failure by assigning a non-empty string or error
// to "err".
func (r *Runner) execute(ctx context.Context, pkg *model.Package, script ScriptType, action string, source []byte) error {
	instance := tengo.NewScript(source)
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times"))

	root := "/"
	if pkg.Dest != nil && pkg.Dest.RootDir != "" {
		root = pkg.Dest.RootDir
	}

	vars := map[string]interface{}{
		"pkgName":    pkg.Name,
		"pkgVersion": pkg.VersionString(),
		"pkgRoot":    root,
		"action":     action,
	}
	for name, value := range vars {
		if err := instance.Add(name, value); err != nil {
			return errors.Wrapf(err, "failed to add %s to %s script", name, script)
		}
	}

	compiled, err := instance.RunContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrHookExecution, "%s: %v", script, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrapf(errors.ErrHookScript, "%s: %v", script, v)
		case string:
			if v != "" {
				return errors.Wrapf(errors.ErrHookScript, "%s: %s", script, v)
			}
		}
	}
	return nil
}
