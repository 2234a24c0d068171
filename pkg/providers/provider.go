package providers

import (
	"sort"

	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"go.ytsaurus.tech/library/go/core/log"
)

// Provider is the entry point of one endpoint implementation. Capabilities are
// expressed by the extra interfaces below.
type Provider interface {
	Type() abstract.ProviderType
}

// Sinker builds the batch target of a pipeline.
type Sinker interface {
	Provider
	Sink() (abstract.Sinker, error)
}

// Sourcer builds an unconfigured event driven source named name that forwards into sink.
type Sourcer interface {
	Provider
	Source(name string, sink abstract.Sink) (abstract.EventDrivenSource, error)
}

type ProviderFactory func(lgr log.Logger, registry metrics.Registry, endpoint model.EndpointParams) Provider

var knownProviders = map[abstract.ProviderType]ProviderFactory{}

// Register adds a provider factory, call it from the provider's init.
func Register(typ abstract.ProviderType, f ProviderFactory) {
	knownProviders[typ] = f
}

// Get builds the provider of typ and reports whether it has capability T.
func Get[T Provider](typ abstract.ProviderType, lgr log.Logger, registry metrics.Registry, endpoint model.EndpointParams) (T, bool) {
	var zero T
	f, ok := knownProviders[typ]
	if !ok {
		return zero, false
	}
	res, ok := f(lgr, registry, endpoint).(T)
	return res, ok
}

func KnownProviders() []string {
	res := make([]string, 0, len(knownProviders))
	for typ := range knownProviders {
		res = append(res, string(typ))
	}
	sort.Strings(res)
	return res
}
