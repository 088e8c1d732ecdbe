package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dsaudit/internal/application"
	"dsaudit/internal/domain"
)

func TestIgnoreCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		docKey  string
		kind    string
		key     string
		wantErr bool
		errMsg  string
	}{
		{name: "instance", docKey: "doc", kind: "instance", key: "1:2"},
		{name: "component", docKey: "doc", kind: "Component", key: "c:1"},
		{name: "orphan composite key", docKey: "doc", kind: "orphan", key: "I1:0;2:1|c:1"},
		{name: "orphan without component", docKey: "doc", kind: "orphan", key: "3:4|"},
		{name: "empty document", docKey: " ", kind: "instance", key: "1:2", wantErr: true, errMsg: "document key is required"},
		{name: "unknown kind", docKey: "doc", kind: "layer", key: "1:2", wantErr: true, errMsg: "expected component, instance or orphan"},
		{name: "empty key", docKey: "doc", kind: "instance", key: "", wantErr: true, errMsg: "ignore key is required"},
		{name: "orphan plain key", docKey: "doc", kind: "orphan", key: "3:4", wantErr: true, errMsg: "invalid ignore key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIgnoreCommand(newMemoryStore(), tt.docKey, tt.kind, tt.key).Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIgnoreCommands_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()

	result, err := NewIgnoreCommand(store, "doc", "instance", "1:2").Execute(ctx)
	if err != nil {
		t.Fatalf("ignore: %v", err)
	}
	if result.Kind != domain.IgnoreInstance || result.Message != "Ignoring instance 1:2" {
		t.Errorf("unexpected result %+v", result)
	}
	if _, err := NewIgnoreCommand(store, "doc", "orphan", "5:6|c:1").Execute(ctx); err != nil {
		t.Fatalf("ignore orphan: %v", err)
	}
	if _, err := NewIgnoreCommand(store, "other", "component", "c:1").Execute(ctx); err != nil {
		t.Fatalf("ignore other document: %v", err)
	}

	sets, err := NewListIgnoresCommand(store, "doc").Execute(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if sets.Len() != 2 || !sets.Contains(domain.IgnoreOrphan, "5:6|c:1") {
		t.Errorf("expected two ignores on doc, got %+v", sets)
	}

	result, err = NewUnignoreCommand(store, "doc", "instance", "1:2").Execute(ctx)
	if err != nil {
		t.Fatalf("unignore: %v", err)
	}
	if result.Message != "No longer ignoring instance 1:2" {
		t.Errorf("unexpected message %q", result.Message)
	}

	if err := NewClearIgnoresCommand(store, "doc").Execute(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	sets, _ = NewListIgnoresCommand(store, "doc").Execute(ctx)
	if sets.Len() != 0 {
		t.Errorf("expected doc cleared, got %d keys", sets.Len())
	}
	other, _ := NewListIgnoresCommand(store, "other").Execute(ctx)
	if other.Len() != 1 {
		t.Error("clearing one document must not touch another")
	}
}

func TestIgnoreCommands_StoreErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.err = errors.New("disk full")

	if _, err := NewIgnoreCommand(store, "doc", "instance", "1:2").Execute(ctx); err == nil || !strings.Contains(err.Error(), "failed to ignore instance 1:2") {
		t.Errorf("expected wrapped store error, got %v", err)
	}
	if _, err := NewUnignoreCommand(store, "doc", "instance", "1:2").Execute(ctx); !errors.Is(err, store.err) {
		t.Errorf("expected store error, got %v", err)
	}
	if err := NewClearIgnoresCommand(store, "doc").Execute(ctx); err == nil {
		t.Error("expected clear error")
	}
	if _, err := NewListIgnoresCommand(store, "").Execute(ctx); err == nil {
		t.Error("expected validation error for empty document key")
	}
	var valErr *application.ValidationError
	if err := NewClearIgnoresCommand(store, "").Execute(ctx); !errors.As(err, &valErr) {
		t.Errorf("expected validation error, got %v", err)
	}
}
