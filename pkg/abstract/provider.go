package abstract

import "sync"

type ProviderType string

var (
	providerNamesMu sync.RWMutex
	providerNames   = map[ProviderType]string{}
)

// RegisterProviderName sets a human readable name, providers call it from init.
func RegisterProviderName(typ ProviderType, name string) {
	providerNamesMu.Lock()
	defer providerNamesMu.Unlock()
	providerNames[typ] = name
}

func (p ProviderType) Name() string {
	providerNamesMu.RLock()
	defer providerNamesMu.RUnlock()
	if name, ok := providerNames[p]; ok {
		return name
	}
	return string(p)
}
