package prometheus

import (
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/transferia/tweetstream/library/go/core/metrics"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

var _ metrics.Registry = (*Registry)(nil)

type RegistryOpts struct {
	Prefix        string
	Tags          map[string]string
	rg            *prometheus.Registry
	nameProcessor func(string) string
}

// NewRegistryOpts returns default options: a fresh prometheus registry and the
// dotted-name sanitizer.
func NewRegistryOpts() *RegistryOpts {
	return &RegistryOpts{
		Prefix:        "",
		Tags:          make(map[string]string),
		rg:            prometheus.NewRegistry(),
		nameProcessor: SanitizeName,
	}
}

func (o *RegistryOpts) SetPrefix(prefix string) *RegistryOpts {
	o.Prefix = prefix
	return o
}

func (o *RegistryOpts) SetTags(tags map[string]string) *RegistryOpts {
	o.Tags = tags
	return o
}

func (o *RegistryOpts) AddTags(tags map[string]string) *RegistryOpts {
	for k, v := range tags {
		o.Tags[k] = v
	}
	return o
}

// SetRegistry makes metrics land in an existing prometheus registry.
func (o *RegistryOpts) SetRegistry(rg *prometheus.Registry) *RegistryOpts {
	o.rg = rg
	return o
}

func (o *RegistryOpts) SetNameProcessor(fn func(string) string) *RegistryOpts {
	o.nameProcessor = fn
	return o
}

type Registry struct {
	rg            *prometheus.Registry
	m             *sync.Mutex
	subregistries map[string]*Registry

	tags          map[string]string
	prefix        string
	nameProcessor func(string) string
}

func NewRegistry(opts *RegistryOpts) *Registry {
	if opts == nil {
		opts = NewRegistryOpts()
	}
	rg := opts.rg
	if rg == nil {
		rg = prometheus.NewRegistry()
	}
	nameProcessor := opts.nameProcessor
	if nameProcessor == nil {
		nameProcessor = SanitizeName
	}
	tags := make(map[string]string, len(opts.Tags))
	for k, v := range opts.Tags {
		tags[k] = v
	}
	return &Registry{
		rg:            rg,
		m:             new(sync.Mutex),
		subregistries: make(map[string]*Registry),
		tags:          tags,
		prefix:        opts.Prefix,
		nameProcessor: nameProcessor,
	}
}

// NewPrometheusRegistryWithNameProcessor returns both the raw prometheus registry
// (for promhttp) and the metrics.Registry view over it.
func NewPrometheusRegistryWithNameProcessor() (*prometheus.Registry, metrics.Registry) {
	rg := prometheus.NewRegistry()
	return rg, NewRegistry(NewRegistryOpts().SetRegistry(rg))
}

// Gather exposes collected metric families, mostly for tests.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	return r.rg.Gather()
}

// FindValue returns the current value of the series name with the given labels.
// Histograms report their sample count. name is the processed prometheus name.
func (r *Registry) FindValue(name string, labels map[string]string) (float64, bool) {
	families, err := r.rg.Gather()
	if err != nil {
		return 0, false
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if !labelsMatch(m.GetLabel(), labels) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue(), true
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue(), true
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount()), true
			}
		}
	}
	return 0, false
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	got := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		got[pair.GetName()] = pair.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func (r *Registry) WithTags(tags map[string]string) metrics.Registry {
	merged := make(map[string]string, len(r.tags)+len(tags))
	for k, v := range r.tags {
		merged[k] = v
	}
	for k, v := range tags {
		merged[k] = v
	}
	return r.newSubregistry(r.prefix, merged)
}

func (r *Registry) WithPrefix(prefix string) metrics.Registry {
	return r.newSubregistry(r.ComposeName(r.prefix, prefix), r.tags)
}

func (r *Registry) ComposeName(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ".")
}

func (r *Registry) Counter(name string) metrics.Counter {
	cnt := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        r.metricName(name),
		ConstLabels: r.tags,
	})
	return &Counter{cnt: r.register(cnt).(prometheus.Counter)}
}

func (r *Registry) FuncCounter(name string, function func() int64) metrics.FuncCounter {
	cnt := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name:        r.metricName(name),
		ConstLabels: r.tags,
	}, func() float64 {
		return float64(function())
	})
	r.register(cnt)
	return &FuncCounter{function: function}
}

func (r *Registry) Gauge(name string) metrics.Gauge {
	gg := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        r.metricName(name),
		ConstLabels: r.tags,
	})
	return &Gauge{gg: r.register(gg).(prometheus.Gauge)}
}

func (r *Registry) FuncGauge(name string, function func() float64) metrics.FuncGauge {
	gg := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        r.metricName(name),
		ConstLabels: r.tags,
	}, function)
	r.register(gg)
	return &FuncGauge{function: function}
}

func (r *Registry) IntGauge(name string) metrics.IntGauge {
	return &IntGauge{Gauge: r.Gauge(name).(*Gauge)}
}

func (r *Registry) FuncIntGauge(name string, function func() int64) metrics.FuncIntGauge {
	gg := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        r.metricName(name),
		ConstLabels: r.tags,
	}, func() float64 {
		return float64(function())
	})
	r.register(gg)
	return &FuncIntGauge{function: function}
}

func (r *Registry) Timer(name string) metrics.Timer {
	return &Timer{gg: r.Gauge(name).(*Gauge).gg}
}

func (r *Registry) Histogram(name string, buckets metrics.Buckets) metrics.Histogram {
	hm := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        r.metricName(name),
		ConstLabels: r.tags,
		Buckets:     bucketsToSlice(buckets),
	})
	return &Histogram{hm: r.register(hm).(prometheus.Observer)}
}

func (r *Registry) DurationHistogram(name string, buckets metrics.DurationBuckets) metrics.Timer {
	hm := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        r.metricName(name),
		ConstLabels: r.tags,
		Buckets:     durationBucketsToSlice(buckets),
	})
	return &Histogram{hm: r.register(hm).(prometheus.Observer)}
}

func (r *Registry) metricName(name string) string {
	return r.nameProcessor(r.ComposeName(r.prefix, name))
}

// register returns the already registered collector for duplicate registrations.
func (r *Registry) register(c prometheus.Collector) prometheus.Collector {
	if err := r.rg.Register(c); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if xerrors.As(err, &alreadyRegistered) {
			return alreadyRegistered.ExistingCollector
		}
		panic(xerrors.Errorf("unable to register metric: %w", err))
	}
	return c
}

func (r *Registry) newSubregistry(prefix string, tags map[string]string) *Registry {
	key := registryKey(prefix, tags)

	r.m.Lock()
	defer r.m.Unlock()

	if existing, ok := r.subregistries[key]; ok {
		return existing
	}
	sub := &Registry{
		rg:            r.rg,
		m:             r.m,
		subregistries: r.subregistries,
		tags:          tags,
		prefix:        prefix,
		nameProcessor: r.nameProcessor,
	}
	r.subregistries[key] = sub
	return sub
}

func registryKey(prefix string, tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString("{")
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(tags[k])
		sb.WriteString(";")
	}
	sb.WriteString("}")
	return sb.String()
}

func bucketsToSlice(buckets metrics.Buckets) []float64 {
	if buckets == nil {
		return prometheus.DefBuckets
	}
	res := make([]float64, 0, buckets.Size())
	for i := 0; i < buckets.Size(); i++ {
		res = append(res, buckets.UpperBound(i))
	}
	return res
}

func durationBucketsToSlice(buckets metrics.DurationBuckets) []float64 {
	if buckets == nil {
		return prometheus.DefBuckets
	}
	res := make([]float64, 0, buckets.Size())
	for i := 0; i < buckets.Size(); i++ {
		res = append(res, buckets.UpperBound(i).Seconds())
	}
	return res
}
