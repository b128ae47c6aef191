// Package apikey keeps a single user-supplied API credential in a
// kvstore.Store.
package apikey

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/stepwise/kvstore"
)

// DefaultKey is the store key the credential lives under.
const DefaultKey = "api_key"

// ErrEmpty is returned by Save for a blank credential.
var ErrEmpty = errors.New("apikey: credential is empty")

// Keeper saves, reads and clears the credential.
type Keeper struct {
	store kvstore.Store
	key   string
}

// New returns a Keeper over store using DefaultKey.
func New(store kvstore.Store) *Keeper {
	return &Keeper{store: store, key: DefaultKey}
}

// Save stores the trimmed credential.
func (k *Keeper) Save(ctx context.Context, credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ErrEmpty
	}
	if err := k.store.Set(ctx, k.key, credential); err != nil {
		return fmt.Errorf("apikey: save: %w", err)
	}
	return nil
}

// Get returns the stored credential, or found=false.
func (k *Keeper) Get(ctx context.Context) (string, bool, error) {
	v, found, err := k.store.Get(ctx, k.key)
	if err != nil {
		return "", false, fmt.Errorf("apikey: get: %w", err)
	}
	return v, found, nil
}

// Has reports whether a non-blank credential is stored.
func (k *Keeper) Has(ctx context.Context) (bool, error) {
	v, found, err := k.Get(ctx)
	if err != nil {
		return false, err
	}
	return found && strings.TrimSpace(v) != "", nil
}

// Clear removes the credential.
func (k *Keeper) Clear(ctx context.Context) error {
	if err := k.store.Clear(ctx, k.key); err != nil {
		return fmt.Errorf("apikey: clear: %w", err)
	}
	return nil
}
