package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	NAMESPACE = "foxroute"
)

// RunMetrics are collected during one routing run and written out at its end.
type RunMetrics struct {
	Registry  *prometheus.Registry
	URLs      *prometheus.CounterVec
	Rules     *prometheus.CounterVec
	Instances prometheus.Gauge
	Latency   prometheus.Summary
}

func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		Registry: prometheus.NewRegistry(),
		URLs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: NAMESPACE,
				Name:      "urls_total",
				Help:      "The count of URLs passed to foxroute, by whether they were kept or dropped.",
			},
			[]string{"result"},
		),
		Rules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: NAMESPACE,
				Name:      "rule_matches_total",
				Help:      "The count of URLs dropped, by the kind of the rule that matched.",
			},
			[]string{"kind"},
		),
		Instances: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: NAMESPACE,
				Name:      "browser_instances",
				Help:      "The number of running browser instances found.",
			},
		),
		Latency: prometheus.NewSummary(
			prometheus.SummaryOpts{
				Namespace: NAMESPACE,
				Name:      "run_seconds",
				Help:      "The latency to filter URLs and start the browser.",
			},
		),
	}

	m.Registry.MustRegister(m.URLs, m.Rules, m.Instances, m.Latency)

	return m
}

// WriteFile writes the metrics in the node_exporter textfile format.
func (m *RunMetrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

type Context struct {
	Metrics *RunMetrics
	timer   *prometheus.Timer
}

func (m *RunMetrics) Start() *Context {
	c := &Context{
		Metrics: m,
	}
	c.timer = prometheus.NewTimer(m.Latency)
	return c
}

func (c *Context) Kept(n int) {
	c.Metrics.URLs.WithLabelValues("kept").Add(float64(n))
}

func (c *Context) Dropped(kind string) {
	c.Metrics.URLs.WithLabelValues("dropped").Inc()
	c.Metrics.Rules.WithLabelValues(kind).Inc()
}

func (c *Context) Instances(n int) {
	c.Metrics.Instances.Set(float64(n))
}

func (c *Context) Close() error {
	if c.timer != nil {
		c.timer.ObserveDuration()
		c.timer = nil
	}
	return nil
}
