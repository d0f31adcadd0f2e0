package kohonen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/kohonen/dataset"
	"github.com/hupe1980/kohonen/lattice"
	"github.com/hupe1980/kohonen/quality"
	"github.com/hupe1980/kohonen/trainer"
)

// State is the scalar training state exposed for status display.
type State = trainer.State

// StepResult describes a single training step.
type StepResult = trainer.Result

// Map is a self-organizing map: a lattice trained against a dataset.
//
// Map serializes all calls with a mutex, so a single Map may be shared by
// several goroutines. Calls never overlap; a long Run blocks readers until
// it returns.
type Map struct {
	mu       sync.Mutex
	trainer  *trainer.Trainer
	logger   *Logger
	metrics  MetricsCollector
	progress *rate.Sometimes
}

// New creates a Map over ds and lat and seeds the lattice weights.
func New(ds *dataset.Dataset, lat *lattice.Lattice, optFns ...Option) (*Map, error) {
	o := applyOptions(optFns)

	if ds == nil {
		return nil, ErrEmptyDataset
	}
	if lat == nil {
		return nil, ErrEmptyLattice
	}

	logger := o.logger.WithShape(lat.Len(), ds.Dim())

	t, err := trainer.New(lat, ds, o.trainerOptions...)
	logger.LogInit(context.Background(), ds.Len(), err)
	if err != nil {
		return nil, translateError(err)
	}

	m := &Map{
		trainer: t,
		logger:  logger,
		metrics: o.metricsCollector,
	}
	if o.progressInterval > 0 {
		m.progress = &rate.Sometimes{Interval: o.progressInterval}
	}

	return m, nil
}

// Step runs a single training iteration.
func (m *Map) Step() (StepResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.trainer.Step()
	m.metrics.RecordStep(res.Distance, err)
	return res, translateError(err)
}

// Run applies n training steps and returns the resulting state.
func (m *Map) Run(n int) (State, error) {
	return m.RunContext(context.Background(), n)
}

// RunContext applies up to n training steps, checking ctx between steps.
// On cancellation it returns the state reached so far and ctx.Err().
func (m *Map) RunContext(ctx context.Context, n int) (State, error) {
	if n < 0 {
		return m.State(), fmt.Errorf("%w: %d", ErrInvalidSteps, n)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	done := 0

	var err error
	for done < n {
		if err = ctx.Err(); err != nil {
			break
		}
		if _, err = m.trainer.Step(); err != nil {
			err = translateError(err)
			break
		}
		done++

		if m.progress != nil {
			m.progress.Do(func() {
				m.logger.LogProgress(ctx, done, n, m.trainer.State())
			})
		}
	}

	st := m.trainer.State()
	elapsed := time.Since(start)
	m.metrics.RecordRun(done, elapsed, err)
	m.logger.LogRun(ctx, done, st, elapsed, err)

	return st, err
}

// Reset restores the starting learning factor and neighbor size and
// re-seeds every weight. Positions are untouched.
func (m *Map) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := translateError(m.trainer.Reset())
	m.metrics.RecordReset(err)
	m.logger.LogReset(context.Background(), err)
	return err
}

// State returns learning factor, neighbor size and step count.
func (m *Map) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.trainer.State()
}

// Snapshot returns detached copies of every neuron's position and weight in
// lattice order, for redraw.
func (m *Map) Snapshot() []lattice.NeuronState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.trainer.Lattice().Snapshot()
}

// Dataset returns the (immutable) training data.
func (m *Map) Dataset() *dataset.Dataset {
	return m.trainer.Dataset()
}

// Quality evaluates quantization and topographic error against the dataset.
func (m *Map) Quality() (quality.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := quality.Evaluate(m.trainer.Lattice(), m.trainer.Dataset())
	return r, translateError(err)
}

// DeadUnits returns the lattice indices of neurons that have not won a
// sample since the last reset.
func (m *Map) DeadUnits() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.trainer.DeadUnits()
}
