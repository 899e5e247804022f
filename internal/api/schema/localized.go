package schema

import (
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/pkg/localized"
)

// looseObject is the OpenAPI schema for bodies whose key set is partly
// decided at runtime by the active language list. The backend is
// schema-flexible on the derived keys, so the contract stays an open object.
func looseObject(description string) *huma.Schema {
	return &huma.Schema{Type: huma.TypeObject, Description: description}
}

// flattenInto merges the derived per-language keys over the marshalled fixed
// part. Every stored language is emitted, active or not.
func flattenInto(fixed any, values localized.ValueSet, scheme localized.NamingScheme) ([]byte, error) {
	base, err := json.Marshal(fixed)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range values.Flatten(scheme) {
		m[k] = v
	}
	return json.Marshal(m)
}

// collectFrom parses the fixed part into dst and gathers derived keys into a
// ValueSet. Keys for languages unknown to the current registry snapshot are
// collected too; dropping them on write would lose data, per the merge
// policy.
func collectFrom(data []byte, dst any, attrs []string, scheme localized.NamingScheme) (localized.ValueSet, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, err
	}
	return localized.Collect(flat, attrs, scheme), nil
}
