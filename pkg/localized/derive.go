package localized

import "strings"

// NamingScheme selects the string rule used to derive a field key from a
// language code and an attribute name. Different entity types picked
// different conventions historically, so the scheme is an explicit tag per
// entity rather than inferred from data.
type NamingScheme int

const (
	// Concat joins the lower-cased code with the attribute: en + Value -> enValue.
	Concat NamingScheme = iota
	// Prefixed appends the capitalized code to the attribute: title + en -> titleEn.
	Prefixed
)

func (s NamingScheme) String() string {
	if s == Prefixed {
		return "prefixed"
	}
	return "concat"
}

// DeriveKey maps a language code and attribute name to the concrete record
// field name. It is pure and case-normalizing: the code is lower-cased before
// concatenation and only its first letter is capitalized in the prefixed
// scheme. Anything beyond the first letter is preserved verbatim, so codes
// like zh-cn and zh_cn stay distinct and ParseKey can invert the key. Codes
// are guaranteed non-empty by the registry; malformed input is not validated
// here.
func DeriveKey(code, attr string, scheme NamingScheme) string {
	code = strings.ToLower(code)
	if scheme == Prefixed {
		return attr + strings.ToUpper(code[:1]) + code[1:]
	}
	return code + attr
}

// ParseKey inverts DeriveKey against an entity's attribute spec. It returns
// the lower-cased language code and matched attribute, or ok=false when key
// is not a derived key for any attribute in attrs.
func ParseKey(key string, attrs []string, scheme NamingScheme) (code, attr string, ok bool) {
	for _, a := range attrs {
		if scheme == Prefixed {
			if strings.HasPrefix(key, a) && len(key) > len(a) {
				rest := key[len(a):]
				return strings.ToLower(rest[:1]) + rest[1:], a, true
			}
			continue
		}
		if strings.HasSuffix(key, a) && len(key) > len(a) {
			return strings.ToLower(key[:len(key)-len(a)]), a, true
		}
	}
	return "", "", false
}
