package companion

import (
	"context"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

// ProviderKeys returns the vault contents unmasked.
func (a *App) ProviderKeys() model.ProviderKeys {
	return a.keys.Get()
}

// SetProviderKey stores key for provider. An empty key clears the slot.
func (a *App) SetProviderKey(ctx context.Context, provider model.Provider, key string) error {
	key = strings.TrimSpace(key)
	return a.keys.Update(ctx, func(k *model.ProviderKeys) error {
		if err := k.Set(provider, key); err != nil {
			return invalid("%v", err)
		}
		return nil
	})
}

// ClearProviderKeys empties every vault slot.
func (a *App) ClearProviderKeys(ctx context.Context) error {
	return a.keys.Replace(ctx, model.ProviderKeys{})
}

// ProbeProvider checks the stored key for provider against its API.
func (a *App) ProbeProvider(ctx context.Context, provider model.Provider) error {
	key, err := a.keys.Get().Get(provider)
	if err != nil {
		return invalid("%v", err)
	}
	if err := a.prober.Probe(ctx, provider, key); err != nil {
		a.log.Info("provider probe failed", "provider", provider, "error", err)
		return err
	}
	return nil
}
