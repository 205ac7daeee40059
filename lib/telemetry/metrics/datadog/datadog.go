package datadog

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"gopkg.in/yaml.v3"

	"github.com/artie-labs/credit-approval/lib/stringutil"
	"github.com/artie-labs/credit-approval/lib/telemetry/metrics/base"
)

const (
	DefaultSampleRate = 1
	DefaultNamespace  = "credit_approval."
	// DefaultAddr is where the agent listens on a single host deployment.
	DefaultAddr = "127.0.0.1:8125"
	// ServiceTag is attached to every metric unless the settings carry their own service tag.
	ServiceTag = "service:credit-approval"
)

// Settings is the typed form of `telemetry.metrics.settings`.
type Settings struct {
	Addr      string   `yaml:"addr"`
	Namespace string   `yaml:"namespace"`
	Tags      []string `yaml:"tags"`
	Sampling  any      `yaml:"sampling"`
	// DisableAggregation sends every sample to the agent instead of aggregating counts and gauges in the client.
	DisableAggregation bool `yaml:"disableAggregation"`
}

func parseSettings(raw map[string]any) (Settings, error) {
	var settings Settings
	if len(raw) > 0 {
		// The settings block is decoded as a loose map, round trip it into the struct.
		out, err := yaml.Marshal(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to encode metrics settings: %w", err)
		}

		if err = yaml.Unmarshal(out, &settings); err != nil {
			return Settings{}, fmt.Errorf("failed to decode metrics settings: %w", err)
		}
	}

	settings.Addr = cmp.Or(settings.Addr, DefaultAddr)
	settings.Namespace = cmp.Or(settings.Namespace, DefaultNamespace)
	if host, port := os.Getenv("TELEMETRY_HOST"), os.Getenv("TELEMETRY_PORT"); !stringutil.Empty(host, port) {
		settings.Addr = fmt.Sprintf("%s:%s", host, port)
		slog.Info("Overriding telemetry address with env vars", slog.String("address", settings.Addr))
	}

	return settings, nil
}

// sampleRate falls back to [DefaultSampleRate] unless the setting is a number in (0, 1].
func (s Settings) sampleRate() float64 {
	rate, err := strconv.ParseFloat(fmt.Sprint(s.Sampling), 64)
	if err != nil || rate > 1 || rate <= 0 {
		return DefaultSampleRate
	}

	return rate
}

func (s Settings) tags() []string {
	tags := slices.Clone(s.Tags)
	if !slices.ContainsFunc(tags, func(tag string) bool { return strings.HasPrefix(tag, "service:") }) {
		tags = append(tags, ServiceTag)
	}

	return tags
}

func (s Settings) options() []statsd.Option {
	opts := []statsd.Option{statsd.WithNamespace(s.Namespace), statsd.WithTags(s.tags())}
	if s.DisableAggregation {
		opts = append(opts, statsd.WithoutClientSideAggregation())
	}

	return opts
}

func NewDatadogClient(raw map[string]any) (base.Client, error) {
	settings, err := parseSettings(raw)
	if err != nil {
		return nil, err
	}

	client, err := statsd.New(settings.Addr, settings.options()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create statsd client: %w", err)
	}

	return &statsClient{client: client, rate: settings.sampleRate()}, nil
}

type statsClient struct {
	client *statsd.Client
	rate   float64
}

// toDatadogTags converts [tags] into sorted "key:value" pairs.
func toDatadogTags(tags map[string]string) []string {
	out := make([]string, 0, len(tags))
	for key, val := range tags {
		out = append(out, fmt.Sprintf("%s:%s", key, val))
	}

	slices.Sort(out)
	return out
}

func (s *statsClient) Timing(name string, value time.Duration, tags map[string]string) {
	_ = s.client.Timing(name, value, toDatadogTags(tags), s.rate)
}

func (s *statsClient) Incr(name string, tags map[string]string) {
	_ = s.client.Incr(name, toDatadogTags(tags), s.rate)
}

func (s *statsClient) Count(name string, value int64, tags map[string]string) {
	_ = s.client.Count(name, value, toDatadogTags(tags), s.rate)
}

func (s *statsClient) Gauge(name string, value float64, tags map[string]string) {
	_ = s.client.Gauge(name, value, toDatadogTags(tags), s.rate)
}

func (s *statsClient) GaugeWithSample(name string, value float64, tags map[string]string, sample float64) {
	_ = s.client.Gauge(name, value, toDatadogTags(tags), sample)
}
