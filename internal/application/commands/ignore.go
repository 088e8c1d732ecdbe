package commands

import (
	"context"
	"fmt"

	"dsaudit/internal/application"
	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

// IgnoreResult contains the result of changing an ignore set
type IgnoreResult struct {
	Kind    domain.IgnoreKind
	Key     string
	Message string
}

// IgnoreCommand adds a key to one of a document's ignore sets
type IgnoreCommand struct {
	store       ports.IgnoreStore
	DocumentKey string
	Kind        string
	Key         string
}

// NewIgnoreCommand creates a new IgnoreCommand
func NewIgnoreCommand(store ports.IgnoreStore, documentKey, kind, key string) *IgnoreCommand {
	return &IgnoreCommand{
		store:       store,
		DocumentKey: documentKey,
		Kind:        kind,
		Key:         key,
	}
}

// Validate checks the document key, kind and key
func (c *IgnoreCommand) Validate() (domain.IgnoreKind, error) {
	if err := application.ValidateRequired("documentKey", c.DocumentKey); err != nil {
		return "", err
	}
	return application.ValidateIgnoreKey(c.Kind, c.Key)
}

// Execute runs the ignore command
func (c *IgnoreCommand) Execute(ctx context.Context) (*IgnoreResult, error) {
	kind, err := c.Validate()
	if err != nil {
		return nil, err
	}

	if err := c.store.Add(c.DocumentKey, kind, c.Key); err != nil {
		return nil, fmt.Errorf("failed to ignore %s %s: %w", kind, c.Key, err)
	}

	return &IgnoreResult{
		Kind:    kind,
		Key:     c.Key,
		Message: fmt.Sprintf("Ignoring %s %s", kind, c.Key),
	}, nil
}

// UnignoreCommand removes a key from one of a document's ignore sets
type UnignoreCommand struct {
	store       ports.IgnoreStore
	DocumentKey string
	Kind        string
	Key         string
}

// NewUnignoreCommand creates a new UnignoreCommand
func NewUnignoreCommand(store ports.IgnoreStore, documentKey, kind, key string) *UnignoreCommand {
	return &UnignoreCommand{
		store:       store,
		DocumentKey: documentKey,
		Kind:        kind,
		Key:         key,
	}
}

// Validate checks the document key, kind and key
func (c *UnignoreCommand) Validate() (domain.IgnoreKind, error) {
	if err := application.ValidateRequired("documentKey", c.DocumentKey); err != nil {
		return "", err
	}
	return application.ValidateIgnoreKey(c.Kind, c.Key)
}

// Execute runs the unignore command
func (c *UnignoreCommand) Execute(ctx context.Context) (*IgnoreResult, error) {
	kind, err := c.Validate()
	if err != nil {
		return nil, err
	}

	if err := c.store.Remove(c.DocumentKey, kind, c.Key); err != nil {
		return nil, fmt.Errorf("failed to unignore %s %s: %w", kind, c.Key, err)
	}

	return &IgnoreResult{
		Kind:    kind,
		Key:     c.Key,
		Message: fmt.Sprintf("No longer ignoring %s %s", kind, c.Key),
	}, nil
}

// ListIgnoresCommand loads a document's ignore sets
type ListIgnoresCommand struct {
	store       ports.IgnoreStore
	DocumentKey string
}

// NewListIgnoresCommand creates a new ListIgnoresCommand
func NewListIgnoresCommand(store ports.IgnoreStore, documentKey string) *ListIgnoresCommand {
	return &ListIgnoresCommand{store: store, DocumentKey: documentKey}
}

// Execute runs the list ignores command
func (c *ListIgnoresCommand) Execute(ctx context.Context) (domain.IgnoreSets, error) {
	if err := application.ValidateRequired("documentKey", c.DocumentKey); err != nil {
		return domain.IgnoreSets{}, err
	}
	return c.store.Load(c.DocumentKey)
}

// ClearIgnoresCommand drops every ignore of a document
type ClearIgnoresCommand struct {
	store       ports.IgnoreStore
	DocumentKey string
}

// NewClearIgnoresCommand creates a new ClearIgnoresCommand
func NewClearIgnoresCommand(store ports.IgnoreStore, documentKey string) *ClearIgnoresCommand {
	return &ClearIgnoresCommand{store: store, DocumentKey: documentKey}
}

// Execute runs the clear ignores command
func (c *ClearIgnoresCommand) Execute(ctx context.Context) error {
	if err := application.ValidateRequired("documentKey", c.DocumentKey); err != nil {
		return err
	}
	if err := c.store.Clear(c.DocumentKey); err != nil {
		return fmt.Errorf("failed to clear ignores: %w", err)
	}
	return nil
}
