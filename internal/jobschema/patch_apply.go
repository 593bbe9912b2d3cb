package jobschema

import (
	"fmt"
	"strings"
)

// ApplyOp applies one decoded patch operation to job. The caller must have
// already run the structural check (non-empty, slash-prefixed path; op one
// of add/replace/remove) and the readonly guard against the full op list
// before calling this.
func ApplyOp(job *Job, op, path string, value interface{}) error {
	segs := splitPath(path)
	if len(segs) == 0 {
		return NewBadRequestError("patch path %q has no attribute segment", path)
	}
	attr := segs[0]
	if !IsKnownAttribute(attr) {
		return NewBadRequestError("patch path %q targets unknown attribute %q", path, attr)
	}
	if len(segs) == 1 {
		return setTopLevel(job, attr, op, value)
	}
	if attr != AttrBotClientData {
		return NewBadRequestError("patch path %q cannot traverse into attribute %q", path, attr)
	}
	return setNested(job, segs[1:], op, value)
}

func splitPath(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func setTopLevel(job *Job, attr, op string, value interface{}) error {
	if op == "remove" {
		clearAttribute(job, attr)
		return nil
	}
	switch attr {
	case AttrGist:
		s, ok := value.(string)
		if !ok {
			return NewBadRequestError("value for %q must be a string", attr)
		}
		job.Gist = s
	case AttrPlatform:
		s, ok := value.(string)
		if !ok {
			return NewBadRequestError("value for %q must be a string", attr)
		}
		job.Platform = s
	case AttrBisectRange:
		pair, err := toSemverPairLoose(value)
		if err != nil {
			return NewBadRequestError("value for %q: %v", attr, err)
		}
		job.BisectRange = pair
	case AttrResultBisect:
		pair, err := toSemverPairLoose(value)
		if err != nil {
			return NewBadRequestError("value for %q: %v", attr, err)
		}
		job.ResultBisect = pair
	case AttrBotClientData:
		job.BotClientData = value
	case AttrError:
		s, ok := value.(string)
		if !ok {
			return NewBadRequestError("value for %q must be a string", attr)
		}
		job.Error = s
	case AttrWorkerID:
		s, ok := value.(string)
		if !ok {
			return NewBadRequestError("value for %q must be a string", attr)
		}
		job.WorkerID = s
	case AttrTimeStarted:
		n, err := toInt64Loose(value)
		if err != nil {
			return NewBadRequestError("value for %q must be an integer", attr)
		}
		job.TimeStarted = &n
	case AttrTimeDone:
		n, err := toInt64Loose(value)
		if err != nil {
			return NewBadRequestError("value for %q must be an integer", attr)
		}
		job.TimeDone = &n
	default:
		return NewBadRequestError("patch target %q is not settable", attr)
	}
	return nil
}

func clearAttribute(job *Job, attr string) {
	switch attr {
	case AttrGist:
		job.Gist = ""
	case AttrPlatform:
		job.Platform = ""
	case AttrBisectRange:
		job.BisectRange = nil
	case AttrResultBisect:
		job.ResultBisect = nil
	case AttrBotClientData:
		job.BotClientData = nil
	case AttrError:
		job.Error = ""
	case AttrWorkerID:
		job.WorkerID = ""
	case AttrTimeStarted:
		job.TimeStarted = nil
	case AttrTimeDone:
		job.TimeDone = nil
	}
}

// setNested mutates the bot_client_data tree in place. It is the only
// attribute patch paths may traverse into, since it is the only declared
// attribute that is itself a nested JSON mapping.
func setNested(job *Job, segs []string, op string, value interface{}) error {
	rootMap, ok := asObject(job.BotClientData)
	if !ok {
		if op == "remove" {
			return nil
		}
		rootMap = map[string]interface{}{}
	}
	if err := mutateTree(rootMap, segs, op, value); err != nil {
		return err
	}
	job.BotClientData = rootMap
	return nil
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func mutateTree(node map[string]interface{}, segs []string, op string, value interface{}) error {
	key := segs[0]
	if len(segs) == 1 {
		if op == "remove" {
			delete(node, key)
		} else {
			node[key] = value
		}
		return nil
	}
	child, ok := node[key]
	if !ok {
		if op == "remove" {
			return nil
		}
		child = map[string]interface{}{}
		node[key] = child
	}
	childMap, ok := asObject(child)
	if !ok {
		return NewBadRequestError("path segment %q does not resolve to an object", key)
	}
	return mutateTree(childMap, segs[1:], op, value)
}

func toSemverPairLoose(v interface{}) ([]string, error) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return nil, fmt.Errorf("must be a pair of strings")
	}
	pair := make([]string, 2)
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("elements must be strings")
		}
		pair[i] = s
	}
	return pair, nil
}

func toInt64Loose(v interface{}) (int64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("not a number")
	}
	return int64(f), nil
}
