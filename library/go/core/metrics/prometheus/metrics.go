package prometheus

import (
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/transferia/tweetstream/library/go/core/metrics"
)

var (
	_ metrics.Counter      = (*Counter)(nil)
	_ metrics.FuncCounter  = (*FuncCounter)(nil)
	_ metrics.Gauge        = (*Gauge)(nil)
	_ metrics.FuncGauge    = (*FuncGauge)(nil)
	_ metrics.IntGauge     = (*IntGauge)(nil)
	_ metrics.FuncIntGauge = (*FuncIntGauge)(nil)
	_ metrics.Timer        = (*Timer)(nil)
	_ metrics.Histogram    = (*Histogram)(nil)
	_ metrics.Timer        = (*Histogram)(nil)
)

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

// SanitizeName turns dotted metric names into valid prometheus names,
// e.g. "src.open-connection.count" -> "src_open_connection_count".
func SanitizeName(name string) string {
	return invalidNameChars.ReplaceAllString(name, "_")
}

type Counter struct {
	cnt prometheus.Counter
}

func (c *Counter) Inc() {
	c.cnt.Inc()
}

func (c *Counter) Add(delta int64) {
	c.cnt.Add(float64(delta))
}

type FuncCounter struct {
	function func() int64
}

func (c *FuncCounter) Function() func() int64 {
	return c.function
}

type Gauge struct {
	gg prometheus.Gauge
}

func (g *Gauge) Set(value float64) {
	g.gg.Set(value)
}

func (g *Gauge) Add(value float64) {
	g.gg.Add(value)
}

type FuncGauge struct {
	function func() float64
}

func (g *FuncGauge) Function() func() float64 {
	return g.function
}

type IntGauge struct {
	*Gauge
}

func (g *IntGauge) Set(value int64) {
	g.Gauge.Set(float64(value))
}

func (g *IntGauge) Add(value int64) {
	g.Gauge.Add(float64(value))
}

type FuncIntGauge struct {
	function func() int64
}

func (g *FuncIntGauge) Function() func() int64 {
	return g.function
}

// Timer keeps the last recorded duration in seconds.
type Timer struct {
	gg prometheus.Gauge
}

func (t *Timer) RecordDuration(value time.Duration) {
	t.gg.Set(value.Seconds())
}

type Histogram struct {
	hm prometheus.Observer
}

func (h *Histogram) RecordValue(value float64) {
	h.hm.Observe(value)
}

func (h *Histogram) RecordDuration(value time.Duration) {
	h.hm.Observe(value.Seconds())
}
