package services_test

import (
	"errors"
	"testing"

	"introcut/internal/services"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "video-extractor", "blackdetect", "probe failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error: %v", err)
	}
	want := "external tool error: video-extractor: blackdetect: probe failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker: %v", err)
	}
	if err.Error() != "external tool error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestRecoverable(t *testing.T) {
	if !services.Recoverable(services.Wrap(services.ErrTimeout, "audio-extractor", "silencedetect", "", nil)) {
		t.Fatal("timeouts should be recoverable")
	}
	if services.Recoverable(services.Wrap(services.ErrConfiguration, "detector", "bounds", "min above max", nil)) {
		t.Fatal("configuration errors should not be recoverable")
	}
}
