package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wingbank/appconfig/pkg/localized"
)

func TestTranslationRequestCollectsDerivedKeys(t *testing.T) {
	payload := []byte(`{"key":"app.title","module":"GENERAL","enValue":"Hello","kmValue":"សួស្តី","thValue":"replay"}`)
	var req TranslationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Key != "app.title" || req.Module != "GENERAL" {
		t.Fatalf("fixed fields: %+v", req)
	}
	want := localized.ValueSet{
		"en": {"Value": "Hello"},
		"km": {"Value": "សួស្តី"},
		"th": {"Value": "replay"},
	}
	if diff := cmp.Diff(want, req.Values); diff != "" {
		t.Fatalf("values diff (-want +got)\n%s", diff)
	}
}

func TestTranslationResponseFlattens(t *testing.T) {
	resp := TranslationResponse{
		ID:        "1",
		Key:       "app.title",
		Platform:  "ALL",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Values: localized.ValueSet{
			"en": {"Value": "Hello"},
			"km": {"Value": "សួស្តី"},
		},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["enValue"] != "Hello" || m["kmValue"] != "សួស្តី" {
		t.Fatalf("derived keys missing: %v", m)
	}
	if m["key"] != "app.title" {
		t.Fatalf("fixed key missing: %v", m)
	}
	if _, ok := m["Values"]; ok {
		t.Fatalf("internal value set leaked to the wire: %v", m)
	}
}

func TestNotificationRoundtrip(t *testing.T) {
	payload := []byte(`{"code":"WELCOME_PUSH","type":"PUSH","titleEn":"Welcome","bodyEn":"Hi","titleKm":"ស្វាគមន៍"}`)
	var req NotificationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Values.Get("en", "title") != "Welcome" || req.Values.Get("km", "title") != "ស្វាគមន៍" {
		t.Fatalf("values: %v", req.Values)
	}
	resp := NotificationResponse{ID: "1", Code: req.Code, Type: req.Type, Values: req.Values}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"titleEn", "bodyEn", "titleKm"} {
		if _, ok := m[k]; !ok {
			t.Errorf("missing %s in %v", k, m)
		}
	}
}

func TestNewPaged(t *testing.T) {
	p := NewPaged([]string{"a", "b"}, 0, 2, 5)
	if p.TotalPages != 3 || p.Last {
		t.Fatalf("paged = %+v", p)
	}
	last := NewPaged([]string{"e"}, 2, 2, 5)
	if !last.Last {
		t.Fatalf("paged = %+v", last)
	}
	empty := NewPaged[string](nil, 0, 10, 0)
	if empty.Content == nil {
		t.Fatal("content must marshal as [] not null")
	}
}
