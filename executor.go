package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a submitted execution job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCancelled
}

// Job tracks one submitted circuit execution.
type Job struct {
	ID          string
	CircuitName string
	Shots       int
	Status      JobStatus
	Result      *ExecutionResult
	Error       error
	SubmittedAt time.Time
	FinishedAt  time.Time
}

// ExecutionResult is the outcome of running a circuit for a number of shots.
type ExecutionResult struct {
	Counts   map[string]int
	Shots    int
	Elapsed  time.Duration
	Fidelity float64 // estimated state fidelity after noise, 1.0 when ideal
}

// QueueInfo describes a backend's current load.
type QueueInfo struct {
	PendingJobs int
	Available   bool
	Backend     string
}

// Executor is the backend abstraction: a local simulator and a remote bridge
// expose the same surface, so callers never branch on where circuits run.
type Executor interface {
	Execute(spec *CircuitSpec, shots int) (*ExecutionResult, error)
	SubmitJob(spec *CircuitSpec, shots int) (*Job, error)
	GetJobStatus(id string) (*Job, error)
	CancelJob(id string) (*Job, error)
	QueueStatus() (*QueueInfo, error)
}

// Errors an executor can surface. Remote backends map transport and account
// failures onto these so the UI can react uniformly.
var (
	ErrExecutorUnavailable = errors.New("executor unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrJobNotFound         = errors.New("job not found")
	ErrQueueFull           = errors.New("queue full")
	ErrMaintenance         = errors.New("backend under maintenance")
)

// TooManyQubitsError reports a circuit wider than the backend supports.
type TooManyQubitsError struct {
	Requested int
	Max       int
}

func (e *TooManyQubitsError) Error() string {
	return fmt.Sprintf("circuit needs %d qubits, backend supports %d", e.Requested, e.Max)
}

// RateLimitError reports a throttled request and when to retry.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// LocalExecutor runs circuits on the in-process state-vector simulator.
// Execution is synchronous; submitted jobs complete before SubmitJob returns.
type LocalExecutor struct {
	maxQubits int
	noise     NoiseModel
	logger    *log.Logger

	mu   sync.Mutex
	rng  *rand.Rand
	jobs map[string]*Job
}

// NewLocalExecutor builds a local backend with the given noise model. A nil
// logger disables logging.
func NewLocalExecutor(noise NoiseModel, seed int64, logger *log.Logger) *LocalExecutor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LocalExecutor{
		maxQubits: maxRegisterQubits,
		noise:     noise,
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
		jobs:      make(map[string]*Job),
	}
}

// SetNoiseModel swaps the noise model used by subsequent executions.
func (ex *LocalExecutor) SetNoiseModel(noise NoiseModel) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.noise = noise
}

// Execute validates, simulates, and samples the circuit. The per-qubit
// readout error of the noise model flips measured bits independently.
func (ex *LocalExecutor) Execute(spec *CircuitSpec, shots int) (*ExecutionResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Qubits > ex.maxQubits {
		return nil, &TooManyQubitsError{Requested: spec.Qubits, Max: ex.maxQubits}
	}
	if shots < 1 {
		return nil, fmt.Errorf("%w: shots must be positive, got %d", ErrMalformedCircuit, shots)
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	start := time.Now()
	r := NewRegister(spec.Qubits)
	for _, inst := range spec.Instructions {
		if err := r.ApplyInstruction(inst); err != nil {
			return nil, err
		}
	}

	depth := spec.Depth()
	fidelity := 1.0
	if !ex.noise.IsIdeal() {
		ex.noise.Apply(r, depth, ex.rng)
		fidelity = ex.noise.ExpectedFidelity(depth)
	}

	measured := spec.MeasuredQubits()
	if len(measured) == 0 {
		measured = make([]int, spec.Qubits)
		for q := range measured {
			measured[q] = q
		}
	}

	counts := make(map[string]int)
	snap := r.Save()
	for s := 0; s < shots; s++ {
		outcome := r.Measure(ex.rng)
		r.Restore(snap)

		bits := 0
		for pos, q := range measured {
			bit := (outcome >> q) & 1
			if ex.noise.MeasurementError > 0 && ex.rng.Float64() < ex.noise.MeasurementError {
				bit ^= 1
			}
			bits |= bit << pos
		}
		counts[FormatBasisState(bits, len(measured))]++
	}

	elapsed := time.Since(start)
	ex.logger.Debug("executed circuit",
		"name", spec.Name, "qubits", spec.Qubits, "depth", depth,
		"shots", shots, "elapsed", elapsed)

	return &ExecutionResult{
		Counts:   counts,
		Shots:    shots,
		Elapsed:  elapsed,
		Fidelity: fidelity,
	}, nil
}

// SubmitJob runs the circuit immediately and records a completed (or failed)
// job, mirroring the async surface of remote backends.
func (ex *LocalExecutor) SubmitJob(spec *CircuitSpec, shots int) (*Job, error) {
	job := &Job{
		ID:          uuid.NewString(),
		CircuitName: spec.Name,
		Shots:       shots,
		Status:      JobRunning,
		SubmittedAt: time.Now(),
	}

	result, err := ex.Execute(spec, shots)
	job.FinishedAt = time.Now()
	if err != nil {
		job.Status = JobFailed
		job.Error = err
	} else {
		job.Status = JobCompleted
		job.Result = result
	}

	ex.mu.Lock()
	ex.jobs[job.ID] = job
	ex.mu.Unlock()

	ex.logger.Info("job finished", "id", job.ID, "status", job.Status)
	return job, nil
}

// GetJobStatus returns the job with the given ID.
func (ex *LocalExecutor) GetJobStatus(id string) (*Job, error) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	job, ok := ex.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job, nil
}

// CancelJob cancels a pending job. Local jobs are always terminal by the time
// they are visible, so this only transitions jobs that somehow remain queued.
func (ex *LocalExecutor) CancelJob(id string) (*Job, error) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	job, ok := ex.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if !job.Status.Terminal() {
		job.Status = JobCancelled
		job.FinishedAt = time.Now()
	}
	return job, nil
}

// QueueStatus reports the backend load. The local simulator has no queue.
func (ex *LocalExecutor) QueueStatus() (*QueueInfo, error) {
	return &QueueInfo{PendingJobs: 0, Available: true, Backend: "local"}, nil
}

// Clock abstracts time for job polling so tests can drive it synthetically.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// AwaitJob polls the executor until the job reaches a terminal status or the
// context is cancelled. A nil clock polls with real time; callers usually pass
// an interval around a second.
func AwaitJob(ctx context.Context, ex Executor, id string, interval time.Duration, clock Clock) (*Job, error) {
	if clock == nil {
		clock = realClock{}
	}
	if interval <= 0 {
		interval = time.Second
	}
	for {
		job, err := ex.GetJobStatus(id)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return job, ctx.Err()
		default:
		}
		clock.Sleep(interval)
	}
}
