package model

import (
	"sort"

	"github.com/transferia/tweetstream/pkg/abstract"
)

var (
	knownSources      = map[abstract.ProviderType]func() Source{}
	knownDestinations = map[abstract.ProviderType]func() Destination{}
)

// RegisterSource adds a source model factory for a provider type.
// Call it from the provider's init.
func RegisterSource(typ abstract.ProviderType, fac func() Source) {
	knownSources[typ] = fac
}

// RegisterDestination adds a destination model factory for a provider type.
// Call it from the provider's init.
func RegisterDestination(typ abstract.ProviderType, fac func() Destination) {
	knownDestinations[typ] = fac
}

func SourceF(typ abstract.ProviderType) (func() Source, bool) {
	f, ok := knownSources[typ]
	return f, ok
}

func DestinationF(typ abstract.ProviderType) (func() Destination, bool) {
	f, ok := knownDestinations[typ]
	return f, ok
}

func KnownSources() []string {
	return sortedKeys(knownSources)
}

func KnownDestinations() []string {
	return sortedKeys(knownDestinations)
}

func sortedKeys[V any](m map[abstract.ProviderType]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
