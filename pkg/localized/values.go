package localized

// ValueSet holds an entity's localized values keyed by language code, then by
// attribute name. Storage and domain code work with this open-ended map;
// derived flat keys exist only at the serialization boundary, which sidesteps
// key-collision and lockstep hazards everywhere else.
type ValueSet map[string]map[string]string

// Get returns the value for (code, attr) or the empty string.
func (v ValueSet) Get(code, attr string) string {
	if v == nil {
		return ""
	}
	return v[code][attr]
}

// Set stores the value for (code, attr), allocating as needed.
func (v ValueSet) Set(code, attr, val string) {
	m, ok := v[code]
	if !ok {
		m = make(map[string]string)
		v[code] = m
	}
	m[attr] = val
}

// Codes returns every language code present in the set, including codes that
// are no longer active. Stale values stay in storage; the schema builder just
// stops emitting columns for them.
func (v ValueSet) Codes() []string {
	codes := make([]string, 0, len(v))
	for c := range v {
		codes = append(codes, c)
	}
	return codes
}

// Flatten expands the set into derived top-level keys under the given scheme,
// e.g. {"en": {"Value": "Hello"}} -> {"enValue": "Hello"}. Every stored
// language is emitted, active or not; the backend contract is
// schema-flexible on these keys.
func (v ValueSet) Flatten(scheme NamingScheme) map[string]string {
	flat := make(map[string]string, len(v))
	for code, attrs := range v {
		for attr, val := range attrs {
			flat[DeriveKey(code, attr, scheme)] = val
		}
	}
	return flat
}

// Collect gathers derived keys out of a flat payload back into a ValueSet,
// ignoring keys that do not parse as (language, attribute) for the given
// attribute list. Fixed fields pass through untouched.
func Collect(flat map[string]any, attrs []string, scheme NamingScheme) ValueSet {
	vs := make(ValueSet)
	for k, raw := range flat {
		code, attr, ok := ParseKey(k, attrs, scheme)
		if !ok || raw == nil {
			continue
		}
		vs.Set(code, attr, asString(raw))
	}
	return vs
}
