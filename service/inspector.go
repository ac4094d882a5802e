package service

import (
	"encoding/base64"
	"fmt"
	"strings"

	"supplier-registry-backend/models"
)

// MaxFileBytes is the decoded-size ceiling for every upload slot.
const MaxFileBytes = 5 * 1024 * 1024

// Allowed MIME types per slot. The catalog slot additionally accepts PDF.
var (
	imageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif"}

	catalogTypes = append([]string{"application/pdf"}, imageTypes...)
)

// inspectedFile is a payload that passed both checks, decoded and ready to
// hand to the blob store.
type inspectedFile struct {
	mimeType string
	data     []byte
}

// inspectFile verifies a data-URL payload's declared size and MIME type
// against the slot's allow-list. Both checks run on the encoded form, so an
// oversized or mistyped payload is rejected before any decoding happens.
// Size wins over type: a too-large payload fails on size regardless of its
// MIME validity.
func inspectFile(payload models.FilePayload, slot string, allowed []string) (*inspectedFile, error) {
	mimeType, encoded, ok := splitDataURL(payload.DataURL)

	// Decoded length of base64 is 3/4 of the encoded length; close enough
	// at these sizes, and cheap to compute without decoding.
	body := encoded
	if !ok {
		body = payload.DataURL
	}
	if len(body)*3/4 > MaxFileBytes {
		return nil, &FileError{Kind: ErrFileTooLarge, Slot: slot}
	}

	if !ok || !contains(allowed, mimeType) {
		return nil, &FileError{Kind: ErrInvalidFileType, Slot: slot, Allowed: allowed}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: decode payload: %w", slot, err)
	}

	return &inspectedFile{mimeType: mimeType, data: data}, nil
}

// splitDataURL parses data:<mime-type>;base64,<encoded-bytes> into its
// content-type tag and encoded body. ok is false when the payload is not a
// self-describing base64 data URL.
func splitDataURL(raw string) (mimeType, encoded string, ok bool) {
	rest, found := strings.CutPrefix(raw, "data:")
	if !found {
		return "", "", false
	}
	header, body, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mimeType, found = strings.CutSuffix(header, ";base64")
	if !found || mimeType == "" {
		return "", "", false
	}
	return mimeType, body, true
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
