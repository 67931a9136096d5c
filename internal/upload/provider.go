// Package upload publishes build artifacts to remote storage.
package upload

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Provider uploads artifact content to a remote store.
type Provider interface {
	// Upload copies reader to remotePath, relative to the provider's prefix.
	Upload(ctx context.Context, reader io.Reader, remotePath string) error

	// Configure sets up the provider from publish settings.
	Configure(settings map[string]any) error

	Name() string
}

// ProviderFactory creates a fresh, unconfigured provider.
type ProviderFactory func() Provider

var registry = map[string]ProviderFactory{}

// RegisterProvider adds a provider under name, replacing any existing one.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// NewProvider creates a provider instance by name.
func NewProvider(name string) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown upload provider: %s (known: %v)", name, Providers())
	}
	return factory(), nil
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterProvider("minio", func() Provider {
		return NewMinioProvider()
	})
}

func stringSetting(settings map[string]any, key string) (string, bool) {
	if v, ok := settings[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func stringSettingOr(settings map[string]any, key, fallback string) string {
	if s, ok := stringSetting(settings, key); ok {
		return s
	}
	return fallback
}

func boolSetting(settings map[string]any, key string, fallback bool) bool {
	switch v := settings[key].(type) {
	case bool:
		return v
	case *bool:
		if v != nil {
			return *v
		}
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
