/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- Error: *.err
- Rejection: *.rejected
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yr12345678/piers-rugyard-auctions/base/env"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	withPodName bool
}

// WithoutPodName drops the pod tag from everything the Service sends.
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// New creates a metric client with pkgName as key prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}

	tags := []string{
		// an empty host drops the tags datadog attaches per host
		"host:",
		"env:" + env.Or(viper.GetString("env_name"), env.EnvName()),
		"app:" + env.Or(viper.GetString("app_name"), env.AppName()),
	}
	if o.withPodName {
		tags = append(tags, "pod:"+env.PodName())
	}

	return &Metrics{pkgName: pkgName, tags: tags}
}

type kind int

const (
	kindGauge kind = iota
	kindCount
	kindHistogram
	kindTiming
)

// Metrics prefixes keys with the package name and guards every bump against panics.
type Metrics struct {
	pkgName string
	tags    []string
}

func (mt *Metrics) bump(k kind, key string, val float64, tags []string) {
	name := mt.pkgName + "." + key
	defer func() {
		if p := recover(); p != nil {
			log.Log().WithFields(log.Fields{
				"panic": p,
				"key":   name + "#" + strings.Join(tags, "#"),
			}).Error("metrics bump panicked")
		}
	}()

	all := append(append([]string{}, mt.tags...), parseTag(tags)...)
	cli := client()

	var err error
	switch k {
	case kindGauge:
		err = cli.Gauge(name, val, all, sampleRate)
	case kindCount:
		err = cli.Count(name, int64(val), all, sampleRate)
	case kindHistogram:
		err = cli.Histogram(name, val, all, sampleRate)
	case kindTiming:
		err = cli.TimeInMilliseconds(name, val, all, sampleRate)
	}
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": name, "val": val}).Error("Bump fail")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	mt.bump(kindGauge, key, val, tags)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	mt.bump(kindCount, key, val, tags)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	mt.bump(kindHistogram, key, val, tags)
}

// BumpTime starts a timer; call End on the result to record it:
//
//     defer s.BumpTime("settle.time").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{mt: mt, key: key, tags: tags, start: time.Now()}
}

type timeTracker struct {
	mt    *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timeTracker) End() {
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	t.mt.bump(kindTiming, t.key, ms, t.tags)
}

// parseTag turns alternating key/value pairs into datadog "key:value" tags.
func parseTag(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

// Noop returns a Service that drops everything.
func Noop() Service {
	return noop{}
}

type noop struct{}

func (noop) BumpAvg(string, float64, ...string)       {}
func (noop) BumpSum(string, float64, ...string)       {}
func (noop) BumpHistogram(string, float64, ...string) {}
func (noop) BumpTime(string, ...string) Ender         { return noopEnder{} }

type noopEnder struct{}

func (noopEnder) End() {}
