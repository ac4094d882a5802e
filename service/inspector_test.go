package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"supplier-registry-backend/models"
)

func dataURL(mimeType string, raw []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestInspectFileDecodesValidPayload(t *testing.T) {
	payload := models.FilePayload{
		DataURL:  dataURL("image/png", []byte("png-bytes")),
		Filename: "logo.png",
	}

	file, err := inspectFile(payload, "logo", imageTypes)
	if err != nil {
		t.Fatalf("inspectFile: %v", err)
	}
	if file.mimeType != "image/png" {
		t.Errorf("mimeType = %q", file.mimeType)
	}
	if string(file.data) != "png-bytes" {
		t.Errorf("data = %q", file.data)
	}
}

func TestInspectFileRejectsOversizedPayload(t *testing.T) {
	oversized := make([]byte, MaxFileBytes+1)
	payload := models.FilePayload{
		DataURL:  dataURL("image/png", oversized),
		Filename: "logo.png",
	}

	_, err := inspectFile(payload, "logo", imageTypes)
	var fileErr *FileError
	if !errors.As(err, &fileErr) || fileErr.Kind != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if fileErr.Slot != "logo" {
		t.Errorf("slot = %q", fileErr.Slot)
	}
}

func TestInspectFileSizeWinsOverInvalidType(t *testing.T) {
	oversized := make([]byte, MaxFileBytes+1)
	payload := models.FilePayload{
		DataURL:  dataURL("application/x-msdownload", oversized),
		Filename: "malware.exe",
	}

	_, err := inspectFile(payload, "logo", imageTypes)
	if !IsKind(err, ErrFileTooLarge) {
		t.Fatalf("oversized payload must fail on size regardless of MIME, got %v", err)
	}
}

func TestInspectFileRejectsDisallowedType(t *testing.T) {
	payload := models.FilePayload{
		DataURL:  dataURL("application/pdf", []byte("%PDF")),
		Filename: "catalog.pdf",
	}

	_, err := inspectFile(payload, "logo", imageTypes)
	var fileErr *FileError
	if !errors.As(err, &fileErr) || fileErr.Kind != ErrInvalidFileType {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
	if !strings.Contains(fileErr.Error(), "image/png") {
		t.Errorf("error must list the allowed set, got %q", fileErr.Error())
	}
}

func TestInspectFileCatalogSlotAllowsPDF(t *testing.T) {
	payload := models.FilePayload{
		DataURL:  dataURL("application/pdf", []byte("%PDF")),
		Filename: "catalog.pdf",
	}

	if _, err := inspectFile(payload, "catalog file", catalogTypes); err != nil {
		t.Fatalf("catalog slot must accept pdf, got %v", err)
	}
}

func TestInspectFileRejectsMissingContentTypeTag(t *testing.T) {
	cases := []string{
		"",
		"not a data url",
		"data:;base64,AAAA",
		"data:image/png,AAAA", // no base64 marker
		base64.StdEncoding.EncodeToString([]byte("raw base64 without header")),
	}

	for _, raw := range cases {
		_, err := inspectFile(models.FilePayload{DataURL: raw, Filename: "x"}, "logo", imageTypes)
		if !IsKind(err, ErrInvalidFileType) {
			t.Errorf("payload %q: expected ErrInvalidFileType, got %v", raw, err)
		}
	}
}

func TestInspectFileRejectsCorruptBase64(t *testing.T) {
	payload := models.FilePayload{DataURL: "data:image/png;base64,!!!not-base64!!!", Filename: "x.png"}

	_, err := inspectFile(payload, "logo", imageTypes)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		t.Fatalf("corrupt body is not a file-check failure: %v", err)
	}
}
