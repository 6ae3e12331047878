package backend

import (
	"testing"

	"github.com/hivecastapp/hivecast/internal/config"
	"github.com/hivecastapp/hivecast/pkg/store"
)

func TestOpenLocalMode(t *testing.T) {
	b, err := Open(config.Config{DataDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if b.Mode != store.ModeLocal {
		t.Errorf("Mode = %v, want local", b.Mode)
	}
	if b.Local == nil {
		t.Fatal("Local = nil")
	}
	if b.Client != nil {
		t.Error("Client set in local mode")
	}
	if b.Store != store.Store(b.Local) {
		t.Error("Store should be the local DB in local mode")
	}
}

func TestOpenRemoteMode(t *testing.T) {
	cfg := config.Config{
		DataDir: t.TempDir(),
		APIURL:  "https://api.hivecast.app",
		APIKey:  "key-abc",
	}
	b, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if b.Mode != store.ModeRemote {
		t.Errorf("Mode = %v, want remote", b.Mode)
	}
	if b.Client == nil {
		t.Fatal("Client = nil in remote mode")
	}
	if b.Local == nil {
		t.Error("Local must be open in remote mode too")
	}
	if b.Store != store.Store(b.Client) {
		t.Error("Store should be the API client in remote mode")
	}
}

func TestOpenKeyWithoutURLStaysLocal(t *testing.T) {
	b, err := Open(config.Config{DataDir: t.TempDir(), APIKey: "key-abc"}, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if b.Mode != store.ModeLocal {
		t.Errorf("Mode = %v, want local", b.Mode)
	}
}
