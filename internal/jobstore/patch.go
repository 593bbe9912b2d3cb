package jobstore

import (
	"strings"

	"bisectbroker/internal/jobschema"
)

// PatchOp is one entry of a PATCH request body: JSON-Patch-style
// {op, path, value}.
type PatchOp struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

// applyPatch runs the structural check, readonly guard, and in-order apply
// steps against a working copy. Precondition checking and commit happen
// in Store.Apply, around this call.
func applyPatch(job *jobschema.Job, ops []PatchOp) error {
	if len(ops) == 0 {
		return jobschema.NewBadRequestError("patch body must contain at least one operation")
	}

	for i, op := range ops {
		if op.Path == "" {
			return jobschema.NewBadRequestError("patch operation %d is missing a path", i)
		}
		if !strings.HasPrefix(op.Path, "/") {
			return jobschema.NewBadRequestError("patch operation %d path %q must start with /", i, op.Path)
		}
		switch op.Op {
		case "add", "replace", "remove":
		default:
			return jobschema.NewBadRequestError("patch operation %d has unknown op %q", i, op.Op)
		}
	}

	for _, op := range ops {
		attr := topLevelAttr(op.Path)
		if jobschema.IsReadonlyAttribute(attr) {
			return jobschema.NewBadRequestError("path %q targets a readonly attribute", op.Path)
		}
	}

	for _, op := range ops {
		if err := jobschema.ApplyOp(job, op.Op, op.Path, op.Value); err != nil {
			return err
		}
	}
	return nil
}

func topLevelAttr(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.Index(trimmed, "/"); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
