package filemgr

import "testing"

func TestExtensionAllowed(t *testing.T) {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if !extensionAllowed(ext) {
			t.Errorf("expected %s to be allowed", ext)
		}
	}
	for _, ext := range []string{".exe", ".svg", ".pdf", "", "jpg"} {
		if extensionAllowed(ext) {
			t.Errorf("expected %s to be rejected", ext)
		}
	}
}

func TestMimeAllowed(t *testing.T) {
	if !mimeAllowed("image/png") {
		t.Error("image/png should be allowed")
	}
	if !mimeAllowed("IMAGE/JPEG") {
		t.Error("MIME check should be case-insensitive")
	}
	if mimeAllowed("application/octet-stream") {
		t.Error("application/octet-stream should be rejected")
	}
	if mimeAllowed("image/svg+xml") {
		t.Error("image/svg+xml should be rejected")
	}
}
