package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"github.com/quillworks/quill/internal/model"
)

func init() {
	SetLogger(zerolog.Nop())
}

func testOptions(endpoint string) Options {
	return Options{
		Endpoint:   endpoint,
		Project:    "blog-test",
		Database:   "blog",
		Collection: "posts",
		Bucket:     "featured-images",
	}
}

func TestCreateSessionKeepsSecretForLaterCalls(t *testing.T) {
	var accountAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/account/sessions/email":
			if r.Header.Get(headerProject) != "blog-test" {
				t.Errorf("Expected project header, got %q", r.Header.Get(headerProject))
			}
			json.NewEncoder(w).Encode(map[string]any{
				"$id":    "sess-1",
				"userId": "user-1",
				"secret": "s3cret",
			})
		case r.Method == http.MethodGet && r.URL.Path == "/account":
			accountAuth = r.Header.Get(headerSession)
			json.NewEncoder(w).Encode(map[string]any{
				"$id":   "user-1",
				"email": "a@x.com",
				"name":  "Ada",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testOptions(srv.URL))

	sess, err := c.CreateSession(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sess.ID != "sess-1" || sess.UserID != "user-1" {
		t.Errorf("Unexpected session: %+v", sess)
	}

	user, err := c.GetAccount(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("Unexpected user: %+v", user)
	}
	if accountAuth != "s3cret" {
		t.Errorf("Expected session secret to be sent, got %q", accountAuth)
	}
}

func TestErrorMapping(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		errType  string
		expected model.Kind
	}{
		{"Wrong password", http.StatusUnauthorized, "user_invalid_credentials", model.KindInvalidCredentials},
		{"Anonymous scope", http.StatusUnauthorized, "general_unauthorized_scope", model.KindUnauthorized},
		{"Duplicate id", http.StatusConflict, "document_already_exists", model.KindDuplicateIdentity},
		{"Malformed input", http.StatusBadRequest, "general_argument_invalid", model.KindValidation},
		{"Missing document", http.StatusNotFound, "document_not_found", model.KindNotFound},
		{"Server fault", http.StatusInternalServerError, "general_unknown", model.KindTransport},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]any{
					"message": "backend says no",
					"type":    tc.errType,
					"code":    tc.status,
				})
			}))
			defer srv.Close()

			c := NewClient(srv.Client(), testOptions(srv.URL))
			_, err := c.GetAccount(context.Background())
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !model.IsKind(err, tc.expected) {
				t.Errorf("Expected kind %q, got %v", tc.expected, err)
			}
			if !strings.Contains(err.Error(), "backend says no") {
				t.Errorf("Expected backend message to surface verbatim, got %q", err.Error())
			}
		})
	}
}

func TestGzipResponseDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			t.Error("Expected the client to accept gzip")
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		json.NewEncoder(gz).Encode(map[string]any{
			"$id":   "user-1",
			"email": "a@x.com",
			"name":  "Ada",
		})
		gz.Close()
	}))
	defer srv.Close()

	// The client sets Accept-Encoding itself, so the transport hands the
	// compressed body through untouched and our gzip path runs.
	c := NewClient(srv.Client(), testOptions(srv.URL))
	user, err := c.GetAccount(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("Unexpected user: %+v", user)
	}
}

func TestListDocumentsNeverNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query()["queries[]"]; len(got) != 2 {
			t.Errorf("Expected 2 opaque queries passed through, got %v", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"total": 0})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testOptions(srv.URL))
	docs, err := c.ListDocuments(context.Background(), []string{`equal("status","active")`, `limit(25)`})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if docs == nil {
		t.Fatal("Expected an empty slice, got nil")
	}
	if len(docs) != 0 {
		t.Errorf("Expected no documents, got %d", len(docs))
	}
}

func TestUploadFileMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/storage/buckets/featured-images/files" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Expected multipart form, got %v", err)
		}
		if got := r.FormValue("fileId"); got != "file-1" {
			t.Errorf("Expected fileId 'file-1', got %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Expected a file part, got %v", err)
		}
		defer file.Close()
		if header.Filename != "cover.png" {
			t.Errorf("Expected filename 'cover.png', got %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected part content type 'image/png', got %q", ct)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testOptions(srv.URL))
	err := c.UploadFile(context.Background(), "file-1", "cover.png", []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestDeleteCurrentSessionClearsSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/account/sessions/email":
			json.NewEncoder(w).Encode(map[string]any{"$id": "s", "userId": "u", "secret": "tok"})
		case "/account/sessions/current":
			w.WriteHeader(http.StatusNoContent)
		case "/account":
			if r.Header.Get(headerSession) != "" {
				t.Error("Expected no session header after logout")
			}
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"type": "general_unauthorized_scope"})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testOptions(srv.URL))
	if _, err := c.CreateSession(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteCurrentSession(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := c.GetAccount(context.Background()); !model.IsKind(err, model.KindUnauthorized) {
		t.Errorf("Expected unauthorized after logout, got %v", err)
	}
}

func TestFilePreviewURL(t *testing.T) {
	c := NewClient(nil, Options{
		Endpoint: "https://cloud.quillapi.dev/v1/",
		Project:  "blog test",
		Bucket:   "featured-images",
	})

	got := c.FilePreviewURL("file-1")
	want := "https://cloud.quillapi.dev/v1/storage/buckets/featured-images/files/file-1/preview?project=blog+test"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
