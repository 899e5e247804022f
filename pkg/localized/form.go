package localized

import "fmt"

// FormState maps field names, fixed and derived, to their current editable
// values. It is seeded from an existing entity on edit or from the empty
// template on create, and submitted whole: no key is stripped on the way out.
type FormState map[string]string

// Hydrate builds the edit-mode form state for entity: the empty template for
// the current language snapshot, overlaid with the entity's value for each
// key that is present. An entity created before a language was added simply
// keeps the empty default for that language; records and the language list
// are independently versioned, so a missing value is a merge case, not an
// error. Entity values for languages no longer active are not copied in.
func Hydrate(entity map[string]any, langs []Language, spec AttributeSpec) FormState {
	form := BuildEmptyForm(langs, spec)
	if entity == nil {
		return form
	}
	for k := range form {
		v, ok := entity[k]
		if !ok || v == nil {
			continue
		}
		form[k] = asString(v)
	}
	return form
}

// Clone returns an independent copy of the form state. Each open form owns
// its state exclusively; reopening always re-hydrates from scratch.
func (f FormState) Clone() FormState {
	out := make(FormState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
