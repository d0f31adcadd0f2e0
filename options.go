package kohonen

import (
	"log/slog"
	"time"

	"github.com/hupe1980/kohonen/trainer"
)

type options struct {
	trainerOptions   []func(*trainer.Options)
	metricsCollector MetricsCollector
	logger           *Logger
	progressInterval time.Duration
}

// Option configures Map construction.
type Option func(*options)

// WithTrainerOptions appends raw trainer option functions.
func WithTrainerOptions(optFns ...func(*trainer.Options)) Option {
	return func(o *options) {
		o.trainerOptions = append(o.trainerOptions, optFns...)
	}
}

// WithSeed makes the sample stream and the weight initialization
// reproducible. It replaces any injected *rand.Rand.
func WithSeed(seed int64) Option {
	return WithTrainerOptions(func(to *trainer.Options) {
		to.Rand = nil
		to.RandomSeed = &seed
	})
}

// WithLearningFactor sets the starting learning factor, in (0, 1].
func WithLearningFactor(f float64) Option {
	return WithTrainerOptions(func(to *trainer.Options) {
		to.LearningFactor = f
	})
}

// WithNeighborSize sets the starting neighborhood radius in lattice units.
func WithNeighborSize(s float64) Option {
	return WithTrainerOptions(func(to *trainer.Options) {
		to.NeighborSize = s
	})
}

// WithDecay sets the per-step decay constants of learning factor and
// neighbor size. Maps expected to run fewer steps want smaller constants.
func WithDecay(learning, neighbor float64) Option {
	return WithTrainerOptions(func(to *trainer.Options) {
		to.LearningDecay = learning
		to.NeighborDecay = neighbor
	})
}

// WithInitializer selects how weights are seeded on creation and reset.
//
// Example, uniform seeding inside the unit cube:
//
//	m, _ := kohonen.New(ds, lat, kohonen.WithInitializer(trainer.RandomInitializer{
//	    Lo: []float64{0, 0, 0},
//	    Hi: []float64{1, 1, 1},
//	}))
func WithInitializer(init trainer.Initializer) Option {
	return WithTrainerOptions(func(to *trainer.Options) {
		to.Initializer = init
	})
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kohonen.NewJSONLogger(slog.LevelInfo)
//	m, _ := kohonen.New(ds, lat, kohonen.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithProgressInterval sets the minimum time between progress log lines
// during RunContext. Zero disables progress logging.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		progressInterval: time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
