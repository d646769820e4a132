package growi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestUploadAttachment(t *testing.T) {
	var gotPageID, gotFilename, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"page": {"_id": "p1", "path": "/docs", "revision": "r1"}}`))
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		gotPageID = r.FormValue("page_id")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		gotFilename = header.Filename
		data, _ := io.ReadAll(file)
		gotContent = string(data)
		_, _ = w.Write([]byte(`{"attachment": {"_id": "att1", "originalName": "report.md", "fileSize": 14}}`))
	}))
	defer server.Close()

	local := filepath.Join(t.TempDir(), "report.md")
	if err := os.WriteFile(local, []byte("# Q3 report\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	client := newTestClient(t, server, APIVersionV3)
	result, err := client.UploadAttachment(t.Context(), UploadAttachmentArgs{
		PageIDOrPath: "/docs",
		FilePath:     local,
	})
	if err != nil {
		t.Fatalf("UploadAttachment: %v", err)
	}
	if gotPageID != "p1" {
		t.Errorf("page_id = %q, want resolved id p1", gotPageID)
	}
	if gotFilename != "report.md" {
		t.Errorf("filename = %q", gotFilename)
	}
	if gotContent != "# Q3 report\n" {
		t.Errorf("content = %q", gotContent)
	}
	if result.Attachment.ID != "att1" {
		t.Errorf("attachment id = %q", result.Attachment.ID)
	}
}

func TestUploadAttachment_MissingFileFailsBeforeNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV3)
	_, err := client.UploadAttachment(t.Context(), UploadAttachmentArgs{
		PageIDOrPath: "/docs",
		FilePath:     filepath.Join(t.TempDir(), "does-not-exist.bin"),
	})
	if !IsKind(err, KindNotFound) {
		t.Errorf("kind = %q, want not_found", KindOf(err))
	}
	if calls != 0 {
		t.Errorf("server saw %d calls, want 0: local file check comes first", calls)
	}
}

func TestAttachmentList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/_api/v3/page" {
			_, _ = w.Write([]byte(`{"page": {"_id": "p1", "path": "/docs", "revision": "r1"}}`))
			return
		}
		if r.URL.Path != "/_api/v3/attachment/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("pageId"); got != "p1" {
			t.Errorf("pageId = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"paginateResult": {
				"docs": [
					{"_id": "a1", "originalName": "one.png"},
					{"_id": "a2", "originalName": "two.pdf"}
				],
				"totalDocs": 7
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV3)
	result, err := client.AttachmentList(t.Context(), AttachmentListArgs{PathOrID: "/docs"})
	if err != nil {
		t.Fatalf("AttachmentList: %v", err)
	}
	if len(result.Attachments) != 2 || result.TotalCount != 7 || !result.HasMore {
		t.Errorf("result = %+v", result)
	}
	if result.Attachments[0].OriginalName != "one.png" {
		t.Errorf("first = %q", result.Attachments[0].OriginalName)
	}
}

func TestAttachmentList_FlatEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/_api/pages.get" {
			_, _ = w.Write([]byte(`{"ok": true, "page": {"_id": "p1", "path": "/docs", "revision": "r1"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok": true, "attachments": [{"_id": "a1", "originalName": "one.png"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV1)
	result, err := client.AttachmentList(t.Context(), AttachmentListArgs{PathOrID: "/docs"})
	if err != nil {
		t.Fatalf("AttachmentList: %v", err)
	}
	if len(result.Attachments) != 1 || result.TotalCount != 1 || result.HasMore {
		t.Errorf("result = %+v", result)
	}
}

func TestAttachmentInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_api/v3/attachment/att1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"attachment": {"_id": "att1", "originalName": "chart.png", "fileFormat": "image/png", "fileSize": 2048}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV3)
	result, err := client.AttachmentInfo(t.Context(), AttachmentInfoArgs{AttachmentID: "att1"})
	if err != nil {
		t.Fatalf("AttachmentInfo: %v", err)
	}
	if result.Attachment.OriginalName != "chart.png" || result.Attachment.FileSize != 2048 {
		t.Errorf("attachment = %+v", result.Attachment)
	}
}

func TestAttachmentInfo_V1Unsupported(t *testing.T) {
	client, _ := NewClient(testConfig("https://wiki.example.com", APIVersionV1), testLogger())
	_, err := client.AttachmentInfo(t.Context(), AttachmentInfoArgs{AttachmentID: "att1"})
	if !IsKind(err, KindInvalidArgument) {
		t.Errorf("kind = %q, want invalid_argument", KindOf(err))
	}
}

func TestDownloadAttachment(t *testing.T) {
	content := []byte("binary-ish content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/_api/v3/attachment/att1":
			_, _ = w.Write([]byte(`{"attachment": {"_id": "att1", "originalName": "chart.png", "fileFormat": "image/png", "filePathProxied": "/attachment/att1"}}`))
		case "/attachment/att1":
			// The binary fetch carries the session cookie, not the token.
			if r.URL.Query().Get("access_token") != "" {
				t.Error("binary fetch must not carry access_token")
			}
			cookie, err := r.Cookie("connect.sid")
			if err != nil || cookie.Value != "sid-value" {
				t.Errorf("connect.sid cookie = %v, %v", cookie, err)
			}
			_, _ = w.Write(content)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL, APIVersionV3)
	cfg.ConnectSID = "sid-value"
	client, err := NewClient(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	dir := t.TempDir()
	result, err := client.DownloadAttachment(t.Context(), DownloadAttachmentArgs{
		AttachmentID: "att1",
		SaveDir:      dir,
	})
	if err != nil {
		t.Fatalf("DownloadAttachment: %v", err)
	}
	if result.SavedPath != filepath.Join(dir, "chart.png") {
		t.Errorf("saved path = %q", result.SavedPath)
	}
	if result.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", result.Size, len(content))
	}
	saved, err := os.ReadFile(result.SavedPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(saved) != string(content) {
		t.Errorf("saved content = %q", saved)
	}
}

func TestDownloadAttachment_MissingSessionCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/_api/v3/attachment/att1":
			_, _ = w.Write([]byte(`{"attachment": {"_id": "att1", "originalName": "secret.pdf", "filePathProxied": "/attachment/att1"}}`))
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV3)
	_, err := client.DownloadAttachment(t.Context(), DownloadAttachmentArgs{
		AttachmentID: "att1",
		SaveDir:      t.TempDir(),
	})
	if !IsKind(err, KindAuth) {
		t.Errorf("kind = %q, want auth naming the session cookie", KindOf(err))
	}
}

func TestDownloadAttachment_OverwritesExisting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/_api/v3/attachment/att1":
			_, _ = w.Write([]byte(`{"attachment": {"_id": "att1", "originalName": "note.txt", "filePathProxied": "/attachment/att1"}}`))
		default:
			_, _ = w.Write([]byte("fresh"))
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("stale content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := testConfig(server.URL, APIVersionV3)
	cfg.ConnectSID = "sid"
	client, err := NewClient(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	result, err := client.DownloadAttachment(t.Context(), DownloadAttachmentArgs{AttachmentID: "att1", SaveDir: dir})
	if err != nil {
		t.Fatalf("DownloadAttachment: %v", err)
	}
	saved, _ := os.ReadFile(result.SavedPath)
	if string(saved) != "fresh" {
		t.Errorf("saved content = %q, existing file should be overwritten", saved)
	}
}

func TestRemoveAttachment(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_api/attachments.remove" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		gotID = r.PostForm.Get("attachment_id")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV3)
	result, err := client.RemoveAttachment(t.Context(), RemoveAttachmentArgs{AttachmentID: "att9"})
	if err != nil {
		t.Fatalf("RemoveAttachment: %v", err)
	}
	if gotID != "att9" {
		t.Errorf("attachment_id = %q", gotID)
	}
	if !result.Removed {
		t.Error("Removed should be true")
	}
}
