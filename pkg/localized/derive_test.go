package localized

import "testing"

func TestDeriveKey(t *testing.T) {
	cases := []struct {
		code, attr string
		scheme     NamingScheme
		want       string
	}{
		{"en", "Value", Concat, "enValue"},
		{"km", "Value", Concat, "kmValue"},
		{"EN", "Message", Concat, "enMessage"},
		{"en", "title", Prefixed, "titleEn"},
		{"km", "body", Prefixed, "bodyKm"},
		{"KM", "title", Prefixed, "titleKm"},
		{"zh-cn", "title", Prefixed, "titleZh-cn"},
		{"zh_cn", "title", Prefixed, "titleZh_cn"},
		{"zh-cn", "Value", Concat, "zh-cnValue"},
	}
	for _, c := range cases {
		if got := DeriveKey(c.code, c.attr, c.scheme); got != c.want {
			t.Errorf("DeriveKey(%q,%q,%v) = %q, want %q", c.code, c.attr, c.scheme, got, c.want)
		}
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	first := DeriveKey("en", "Value", Concat)
	for i := 0; i < 100; i++ {
		if got := DeriveKey("en", "Value", Concat); got != first {
			t.Fatalf("call %d = %q, want %q", i, got, first)
		}
	}
}

func TestDeriveKeyCollisionFree(t *testing.T) {
	langs := Normalize([]Language{
		{Code: "en"}, {Code: "km"}, {Code: "th"}, {Code: "vi"}, {Code: "zh"},
		{Code: "zh-cn"}, {Code: "zh_cn"},
	})
	for _, scheme := range []NamingScheme{Concat, Prefixed} {
		for _, attr := range []string{"Value", "title", "body"} {
			seen := map[string]string{}
			for _, l := range langs {
				k := DeriveKey(l.Code, attr, scheme)
				if prev, ok := seen[k]; ok {
					t.Fatalf("%v/%s: %q collides for codes %q and %q", scheme, attr, k, prev, l.Code)
				}
				seen[k] = l.Code
			}
		}
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		key    string
		attrs  []string
		scheme NamingScheme
		code   string
		attr   string
		ok     bool
	}{
		{"enValue", []string{"Value"}, Concat, "en", "Value", true},
		{"kmMessage", []string{"Message"}, Concat, "km", "Message", true},
		{"titleEn", []string{"title", "body"}, Prefixed, "en", "title", true},
		{"bodyKm", []string{"title", "body"}, Prefixed, "km", "body", true},
		{"key", []string{"Value"}, Concat, "", "", false},
		{"status", []string{"title", "body"}, Prefixed, "", "", false},
		{"Value", []string{"Value"}, Concat, "", "", false},
		{"title", []string{"title", "body"}, Prefixed, "", "", false},
	}
	for _, c := range cases {
		code, attr, ok := ParseKey(c.key, c.attrs, c.scheme)
		if code != c.code || attr != c.attr || ok != c.ok {
			t.Errorf("ParseKey(%q) = (%q,%q,%v), want (%q,%q,%v)", c.key, code, attr, ok, c.code, c.attr, c.ok)
		}
	}
}

func TestParseKeyInvertsDerive(t *testing.T) {
	attrs := []string{"title", "body"}
	for _, code := range []string{"en", "km", "th", "zh-cn", "zh_cn"} {
		for _, attr := range attrs {
			key := DeriveKey(code, attr, Prefixed)
			gotCode, gotAttr, ok := ParseKey(key, attrs, Prefixed)
			if !ok || gotCode != code || gotAttr != attr {
				t.Errorf("roundtrip %q: got (%q,%q,%v)", key, gotCode, gotAttr, ok)
			}
		}
	}
}
