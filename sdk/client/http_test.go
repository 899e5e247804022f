package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/wingbank/appconfig/sdk"
)

func TestLoginAndList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/auth/login":
			json.NewEncoder(w).Encode(sdk.TokenPair{AccessToken: "a1", RefreshToken: "r1"})
		case "/v1/translations":
			if r.Header.Get("Authorization") != "Bearer a1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"content": []map[string]any{
					{"id": "t1", "key": "login.title", "enValue": "Login", "kmValue": "ចូល"},
				},
				"page": 0, "size": 10, "totalElements": 1, "totalPages": 1, "last": true,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Login(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	page, err := c.ListTranslations(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Content) != 1 {
		t.Fatalf("content=%d", len(page.Content))
	}
	tr := page.Content[0]
	if tr.Key != "login.title" || tr.Values["enValue"] != "Login" || tr.Values["kmValue"] != "ចូល" {
		t.Fatalf("translation=%+v", tr)
	}
}

func TestRefreshAndReplayOn401(t *testing.T) {
	var listCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/auth/refresh":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["refreshToken"] != "r1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(sdk.TokenPair{AccessToken: "a2", RefreshToken: "r2"})
		case "/v1/app-languages":
			listCalls++
			if r.Header.Get("Authorization") != "Bearer a2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"content": []map[string]any{{"code": "en", "name": "English"}},
				"last":    true,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	// a1 is stale; the client must refresh once and replay
	c := New(srv.URL, WithToken("a1", "r1"))
	page, err := c.ListLanguages(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listCalls != 2 {
		t.Fatalf("list calls=%d, want rejected then replayed", listCalls)
	}
	if len(page.Content) != 1 || page.Content[0].Code != "en" {
		t.Fatalf("page=%+v", page)
	}
}

func TestTranslationSchemaDecodesLanguageLabels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/translations/schema" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"languages": []map[string]any{
				{"code": "en", "label": "English"},
				{"code": "km", "label": "Khmer"},
			},
			"columns": []map[string]any{{"key": "enValue", "header": "EN VALUE"}},
			"form":    map[string]string{"enValue": ""},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("a1", ""))
	view, err := c.TranslationSchema(context.Background())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if len(view.Languages) != 2 || view.Languages[0].Label != "English" || view.Languages[1].Code != "km" {
		t.Fatalf("languages=%+v", view.Languages)
	}
}

func TestTranslationRoundtripKeepsDynamicKeys(t *testing.T) {
	in := sdk.Translation{Key: "login.title", Values: map[string]string{"enValue": "Login", "thValue": "เข้าสู่ระบบ"}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal flat: %v", err)
	}
	if flat["enValue"] != "Login" || flat["thValue"] != "เข้าสู่ระบบ" {
		t.Fatalf("flat=%v", flat)
	}
	var out sdk.Translation
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Values["enValue"] != "Login" || out.Values["thValue"] != "เข้าสู่ระบบ" {
		t.Fatalf("values=%v", out.Values)
	}
}
