package jobschema

import "fmt"

// ValidateCreate checks a decoded JSON object against the create rules:
// gist and type are required, no key may fall outside the declared
// attribute set, and every present value must satisfy its per-attribute
// predicate. On success it returns a Job with id/time_created/version left
// zero for the store to fill in.
func ValidateCreate(input map[string]interface{}) (Job, error) {
	for key := range input {
		if !IsKnownAttribute(key) {
			return Job{}, NewValidationError(key, "unknown attribute")
		}
	}

	job := Job{}

	typeVal, hasType := input[AttrType]
	if !hasType {
		return Job{}, NewValidationError(AttrType, "required")
	}
	typeStr, ok := typeVal.(string)
	if !ok {
		return Job{}, NewValidationError(AttrType, "must be a string")
	}
	if !allowedTypes[typeStr] {
		return Job{}, NewValidationError(AttrType, "unrecognized type %q", typeStr)
	}
	job.Type = typeStr

	gistVal, hasGist := input[AttrGist]
	if !hasGist {
		return Job{}, NewValidationError(AttrGist, "required")
	}
	gistStr, ok := gistVal.(string)
	if !ok || gistStr == "" {
		return Job{}, NewValidationError(AttrGist, "must be a non-empty string")
	}
	job.Gist = gistStr

	if err := applyOptionalAttributes(&job, input); err != nil {
		return Job{}, err
	}

	return job, nil
}

// ValidatePatchResult re-checks every attribute invariant against a record
// that has just had patch ops applied. Readonly-path mutation is rejected
// earlier, on the patch ops themselves, and unknown attributes are rejected
// by ApplyOp, so this only re-validates value shape: semver pairs and enum
// membership (the working copy is built from a schema-conformant base so
// this mostly catches bad `add`/`replace` values).
func ValidatePatchResult(job Job) error {
	if job.Type != "" && !allowedTypes[job.Type] {
		return NewValidationError(AttrType, "unrecognized type %q", job.Type)
	}
	if job.Platform != "" && !allowedPlatforms[job.Platform] {
		return NewValidationError(AttrPlatform, "unrecognized platform %q", job.Platform)
	}
	if err := validateSemverPair(AttrBisectRange, job.BisectRange); err != nil {
		return err
	}
	if err := validateSemverPair(AttrResultBisect, job.ResultBisect); err != nil {
		return err
	}
	return nil
}

func applyOptionalAttributes(job *Job, input map[string]interface{}) error {
	if v, ok := input[AttrPlatform]; ok {
		s, ok := v.(string)
		if !ok || !allowedPlatforms[s] {
			return NewValidationError(AttrPlatform, "unrecognized platform %q", fmt.Sprint(v))
		}
		job.Platform = s
	}
	if v, ok := input[AttrBisectRange]; ok {
		pair, err := toSemverPair(AttrBisectRange, v)
		if err != nil {
			return err
		}
		job.BisectRange = pair
	}
	if v, ok := input[AttrResultBisect]; ok {
		pair, err := toSemverPair(AttrResultBisect, v)
		if err != nil {
			return err
		}
		job.ResultBisect = pair
	}
	if v, ok := input[AttrBotClientData]; ok {
		job.BotClientData = v
	}
	if v, ok := input[AttrError]; ok {
		s, ok := v.(string)
		if !ok {
			return NewValidationError(AttrError, "must be a string")
		}
		job.Error = s
	}
	if v, ok := input[AttrWorkerID]; ok {
		s, ok := v.(string)
		if !ok {
			return NewValidationError(AttrWorkerID, "must be a string")
		}
		job.WorkerID = s
	}
	if v, ok := input[AttrTimeStarted]; ok {
		n, err := toInt64(AttrTimeStarted, v)
		if err != nil {
			return err
		}
		job.TimeStarted = &n
	}
	if v, ok := input[AttrTimeDone]; ok {
		n, err := toInt64(AttrTimeDone, v)
		if err != nil {
			return err
		}
		job.TimeDone = &n
	}
	return nil
}

func toSemverPair(field string, v interface{}) ([]string, error) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return nil, NewValidationError(field, "must be a pair of semantic versions")
	}
	pair := make([]string, 2)
	for i, elem := range arr {
		s, ok := elem.(string)
		if !ok || !IsValidSemver(s) {
			return nil, NewValidationError(field, "element %q is not a valid semantic version", fmt.Sprint(elem))
		}
		pair[i] = s
	}
	return pair, nil
}

func validateSemverPair(field string, pair []string) error {
	if pair == nil {
		return nil
	}
	if len(pair) != 2 {
		return NewValidationError(field, "must be a pair of semantic versions")
	}
	for _, s := range pair {
		if !IsValidSemver(s) {
			return NewValidationError(field, "element %q is not a valid semantic version", s)
		}
	}
	return nil
}

func toInt64(field string, v interface{}) (int64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, NewValidationError(field, "must be an integer")
	}
	return int64(f), nil
}
