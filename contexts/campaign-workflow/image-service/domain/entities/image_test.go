package entities

import (
	"strings"
	"testing"
)

func TestImageStatusTerminal(t *testing.T) {
	if ImageStatusPending.Terminal() {
		t.Fatalf("pending must not be terminal")
	}
	for _, status := range []ImageStatus{ImageStatusApproved, ImageStatusRejected} {
		if !status.Terminal() {
			t.Fatalf("%s must be terminal", status)
		}
	}
	if ImageStatus("flagged").Valid() {
		t.Fatalf("unknown status must not validate")
	}
}

func TestValidateUpload(t *testing.T) {
	base := Image{CampaignID: "camp-1", UploaderID: "user-1", FileName: "site.jpg"}
	if !base.ValidateUpload() {
		t.Fatalf("valid upload rejected")
	}

	cases := map[string]Image{
		"missing campaign": {UploaderID: "user-1", FileName: "site.jpg"},
		"missing uploader": {CampaignID: "camp-1", FileName: "site.jpg"},
		"blank file name":  {CampaignID: "camp-1", UploaderID: "user-1", FileName: "   "},
		"long file name":   {CampaignID: "camp-1", UploaderID: "user-1", FileName: strings.Repeat("a", 256)},
	}
	for name, img := range cases {
		if img.ValidateUpload() {
			t.Fatalf("%s: expected rejection", name)
		}
	}
}
