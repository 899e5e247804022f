package localized

import "strings"

// Column is one list-view column keyed by a fixed or derived field name.
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

// AttributeSpec fixes the shape of one localized entity type: which
// attributes repeat per language, under which naming scheme, and which fixed
// columns surround the language groups. The attribute set is fixed per type;
// only the language set varies.
type AttributeSpec struct {
	Scheme   NamingScheme
	Attrs    []string
	Leading  []Column
	Trailing []Column
	// Defaults seeds fixed fields in empty forms; fixed keys absent from the
	// map default to the empty string.
	Defaults map[string]string
}

// BuildColumns produces the list-view columns for the given language
// snapshot: leading fixed columns, then one column group per language in
// registry order, then trailing fixed columns. The result is stable for a
// given snapshot and rebuilt wholesale when the snapshot changes.
func BuildColumns(langs []Language, spec AttributeSpec) []Column {
	cols := make([]Column, 0, len(spec.Leading)+len(langs)*len(spec.Attrs)+len(spec.Trailing))
	cols = append(cols, spec.Leading...)
	for _, l := range langs {
		for _, a := range spec.Attrs {
			cols = append(cols, Column{
				Key:    DeriveKey(l.Code, a, spec.Scheme),
				Header: header(l, a, spec),
			})
		}
	}
	cols = append(cols, spec.Trailing...)
	return cols
}

// BuildEmptyForm produces the create-mode form state: every fixed field at
// its default plus one empty entry per (language, attribute) pair. Every key
// BuildColumns can emit for the same inputs exists here, and vice versa; the
// two stay in lockstep by construction.
func BuildEmptyForm(langs []Language, spec AttributeSpec) FormState {
	form := make(FormState, len(spec.Leading)+len(langs)*len(spec.Attrs)+len(spec.Trailing))
	for _, c := range spec.Leading {
		form[c.Key] = spec.Defaults[c.Key]
	}
	for _, l := range langs {
		for _, a := range spec.Attrs {
			form[DeriveKey(l.Code, a, spec.Scheme)] = ""
		}
	}
	for _, c := range spec.Trailing {
		form[c.Key] = spec.Defaults[c.Key]
	}
	return form
}

// header combines the language label with the attribute name. Single-attribute
// entities label columns with the language alone (the convention the
// translation screens use); multi-attribute entities need the attribute to
// disambiguate.
func header(l Language, attr string, spec AttributeSpec) string {
	label := l.Label
	if label == "" {
		label = l.Code
	}
	if len(spec.Attrs) == 1 {
		return strings.ToUpper(label)
	}
	return strings.ToUpper(attr + " " + label)
}
