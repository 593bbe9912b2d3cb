package jobstore

import (
	"encoding/json"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"bisectbroker/internal/jobschema"
)

// Clause is one parsed filter-query key/value pair: a dotted attribute
// path, an optional negation flag, and the coerced value list it compares
// against. Clauses from distinct keys combine with AND.
type Clause struct {
	Path   string
	Negate bool
	Values []interface{}
}

// ParseFilters turns the list endpoint's query string into clauses: a
// trailing "!" on the key negates, and the value is a comma-separated
// list of JSON-scalar atoms (with "undefined" meaning absent).
func ParseFilters(q url.Values) []Clause {
	grouped := make(map[string]*Clause)
	var order []string

	// Sort raw keys for deterministic clause ordering across calls with
	// the same query, even though net/http's map has none.
	rawKeys := make([]string, 0, len(q))
	for k := range q {
		rawKeys = append(rawKeys, k)
	}
	sort.Strings(rawKeys)

	for _, rawKey := range rawKeys {
		negate := strings.HasSuffix(rawKey, "!")
		path := rawKey
		if negate {
			path = strings.TrimSuffix(rawKey, "!")
		}
		groupKey := path
		if negate {
			groupKey += "!"
		}
		clause, ok := grouped[groupKey]
		if !ok {
			clause = &Clause{Path: path, Negate: negate}
			grouped[groupKey] = clause
			order = append(order, groupKey)
		}
		for _, raw := range q[rawKey] {
			for _, atom := range strings.Split(raw, ",") {
				clause.Values = append(clause.Values, jobschema.CoerceFilterValue(path, atom))
			}
		}
	}

	clauses := make([]Clause, 0, len(order))
	for _, k := range order {
		clauses = append(clauses, *grouped[k])
	}
	return clauses
}

// matchJob reports whether every clause matches the job's generic JSON
// projection (AND across clauses).
func matchJob(jobView map[string]interface{}, clauses []Clause) bool {
	for _, c := range clauses {
		if !matchClause(jobView, c) {
			return false
		}
	}
	return true
}

func matchClause(jobView map[string]interface{}, c Clause) bool {
	resolved, present := resolvePath(jobView, c.Path)
	isMember := false
	for _, v := range c.Values {
		if v == jobschema.Undefined {
			if !present {
				isMember = true
				break
			}
			continue
		}
		if present && reflect.DeepEqual(resolved, v) {
			isMember = true
			break
		}
	}
	if c.Negate {
		return !isMember
	}
	return isMember
}

// resolvePath walks a dotted path through the job's generic JSON view.
// Any missing segment resolves to absent; unknown attribute paths are
// never an error, so queries stay tolerant of schema evolution.
func resolvePath(view map[string]interface{}, path string) (interface{}, bool) {
	segs := strings.Split(path, ".")
	var cur interface{} = view
	for _, seg := range segs {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// jobView converts a job to the generic map the query engine walks,
// mirroring the JSON the HTTP surface would return for GET /api/jobs/{id}.
func jobView(job jobschema.Job) (map[string]interface{}, error) {
	raw, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	var view map[string]interface{}
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, err
	}
	return view, nil
}

// FilterIDs scans jobs and returns the ids of those matching every clause.
func FilterIDs(jobs []jobschema.Job, clauses []Clause) ([]string, error) {
	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		view, err := jobView(job)
		if err != nil {
			return nil, err
		}
		if matchJob(view, clauses) {
			ids = append(ids, job.ID)
		}
	}
	return ids, nil
}
