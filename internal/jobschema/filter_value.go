package jobschema

import "strconv"

// Undefined is the sentinel value produced by CoerceFilterValue for the
// literal token "undefined": it denotes "absent" rather than any JSON value.
type undefinedType struct{}

// Undefined is the unique value representing filter absence.
var Undefined = undefinedType{}

// numericAttributes declares which top-level attributes compare as numbers
// rather than strings when their query-string form is coerced.
var numericAttributes = map[string]bool{
	AttrTimeCreated: true,
	AttrTimeStarted: true,
	AttrTimeDone:    true,
}

// CoerceFilterValue turns the string form of one comma-separated filter
// atom into the typed value used for equality comparison. The literal
// "undefined" always coerces to Undefined regardless of attribute. Known
// numeric attributes coerce to float64; everything else falls back to
// generic JSON-scalar coercion (bool, null, number, else string) so that
// nested bot_client_data paths -- which have no declared type -- still
// compare sensibly.
func CoerceFilterValue(attr, raw string) interface{} {
	if raw == "undefined" {
		return Undefined
	}
	if numericAttributes[attr] {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return raw
	}
	return coerceJSONScalar(raw)
}

// coerceJSONScalar parses an atom the way a JSON scalar literal would be
// read: true/false/null, an integer or float, or else the literal string.
func coerceJSONScalar(raw string) interface{} {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
