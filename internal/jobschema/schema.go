// Package jobschema defines the bisect job record shape and the validation
// rules the store and patch engine enforce around it.
package jobschema

// TypeBisect is the only currently accepted job type.
const TypeBisect = "bisect"

var allowedTypes = map[string]bool{
	TypeBisect: true,
}

// Platform values a job may declare.
const (
	PlatformDarwin = "darwin"
	PlatformLinux  = "linux"
	PlatformWin32  = "win32"
)

var allowedPlatforms = map[string]bool{
	PlatformDarwin: true,
	PlatformLinux:  true,
	PlatformWin32:  true,
}

// Attribute names, used both for JSON keys and for patch/filter paths.
const (
	AttrID            = "id"
	AttrType          = "type"
	AttrGist          = "gist"
	AttrTimeCreated   = "time_created"
	AttrTimeStarted   = "time_started"
	AttrTimeDone      = "time_done"
	AttrPlatform      = "platform"
	AttrBisectRange   = "bisect_range"
	AttrResultBisect  = "result_bisect"
	AttrBotClientData = "bot_client_data"
	AttrError         = "error"
	AttrWorkerID      = "worker_id"
)

// knownAttributes is the declared attribute set. Anything outside this set
// is rejected at create and patch time (invariant 4).
var knownAttributes = map[string]bool{
	AttrID:            true,
	AttrType:          true,
	AttrGist:          true,
	AttrTimeCreated:   true,
	AttrTimeStarted:   true,
	AttrTimeDone:      true,
	AttrPlatform:      true,
	AttrBisectRange:   true,
	AttrResultBisect:  true,
	AttrBotClientData: true,
	AttrError:         true,
	AttrWorkerID:      true,
}

// readonlyAttributes can never be set by a patch.
var readonlyAttributes = map[string]bool{
	AttrID:          true,
	AttrType:        true,
	AttrTimeCreated: true,
}

// IsKnownAttribute reports whether name is part of the declared schema.
func IsKnownAttribute(name string) bool {
	return knownAttributes[name]
}

// IsReadonlyAttribute reports whether name may never be mutated by a patch.
func IsReadonlyAttribute(name string) bool {
	return readonlyAttributes[name]
}

// Job is the JSON projection of a job record. bot_client_data is carried as
// untyped JSON (map/slice/scalar) since it is never interpreted by the
// broker beyond filtering.
type Job struct {
	ID             string      `json:"id"`
	Type           string      `json:"type"`
	Gist           string      `json:"gist"`
	TimeCreated    int64       `json:"time_created"`
	TimeStarted    *int64      `json:"time_started,omitempty"`
	TimeDone       *int64      `json:"time_done,omitempty"`
	Platform       string      `json:"platform,omitempty"`
	BisectRange    []string    `json:"bisect_range,omitempty"`
	ResultBisect   []string    `json:"result_bisect,omitempty"`
	BotClientData  interface{} `json:"bot_client_data,omitempty"`
	Error          string      `json:"error,omitempty"`
	WorkerID       string      `json:"worker_id,omitempty"`
	Version        int         `json:"-"`
}

// Clone returns a deep-enough copy for safe handoff outside the store.
// bot_client_data is copied recursively (see cloneJSONValue) to avoid
// aliasing nested maps/slices with the stored record.
func (j Job) Clone() Job {
	c := j
	if j.BisectRange != nil {
		c.BisectRange = append([]string(nil), j.BisectRange...)
	}
	if j.ResultBisect != nil {
		c.ResultBisect = append([]string(nil), j.ResultBisect...)
	}
	if j.TimeStarted != nil {
		v := *j.TimeStarted
		c.TimeStarted = &v
	}
	if j.TimeDone != nil {
		v := *j.TimeDone
		c.TimeDone = &v
	}
	c.BotClientData = cloneJSONValue(j.BotClientData)
	return c
}

func cloneJSONValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = cloneJSONValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = cloneJSONValue(val)
		}
		return out
	default:
		return v
	}
}
