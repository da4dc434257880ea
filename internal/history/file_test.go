package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sanachat/internal/models"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	if got := store.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty transcript for missing file, got %#v", got)
	}
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	store := NewFileStore(path)
	if got := store.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty transcript for corrupt file, got %#v", got)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileStore(path)
	ctx := context.Background()

	transcript := []models.Message{
		{Role: models.RoleSystem, Content: "be nice"},
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi"},
	}
	store.Save(ctx, transcript)

	got := store.Load(ctx)
	if !reflect.DeepEqual(got, transcript) {
		t.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", transcript, got)
	}
}

func TestFileStoreLoadSaveIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	ctx := context.Background()

	original := []models.Message{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "second"},
	}
	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal seed transcript: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("seed history file: %v", err)
	}

	store := NewFileStore(path)
	store.Save(ctx, store.Load(ctx))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}
	var after []models.Message
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("file no longer valid JSON: %v", err)
	}
	if !reflect.DeepEqual(after, original) {
		t.Fatalf("load+save changed content:\nwant %#v\ngot  %#v", original, after)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileStore(path)
	ctx := context.Background()

	store.Save(ctx, []models.Message{
		{Role: models.RoleUser, Content: "old"},
		{Role: models.RoleAssistant, Content: "stale"},
	})
	store.Save(ctx, []models.Message{{Role: models.RoleUser, Content: "new"}})

	got := store.Load(ctx)
	if len(got) != 1 || got[0].Content != "new" {
		t.Fatalf("save did not overwrite prior content: %#v", got)
	}
}
