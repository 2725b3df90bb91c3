package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocalExecuteBell(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 1, nil)
	res, err := ex.Execute(bellSpec(), 500)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Shots != 500 {
		t.Errorf("Shots = %d", res.Shots)
	}
	if res.Fidelity != 1 {
		t.Errorf("ideal fidelity = %v, want 1", res.Fidelity)
	}
	total := 0
	for state, count := range res.Counts {
		if state != "00" && state != "11" {
			t.Errorf("Bell produced %q under ideal noise", state)
		}
		total += count
	}
	if total != 500 {
		t.Errorf("counts sum to %d", total)
	}
}

func TestLocalExecuteMeasuredSubset(t *testing.T) {
	// Only qubit 1 is measured, so keys are single bits.
	spec := &CircuitSpec{
		Qubits: 2,
		Cbits:  1,
		Instructions: []GateInstruction{
			{Name: "x", Qubits: []int{1}},
			{Name: "measure", Qubits: []int{1}},
		},
	}
	ex := NewLocalExecutor(NoiseIdeal, 2, nil)
	res, err := ex.Execute(spec, 100)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Counts["1"] != 100 {
		t.Errorf("counts = %v, want all \"1\"", res.Counts)
	}
}

func TestLocalExecuteNoisyFidelity(t *testing.T) {
	ex := NewLocalExecutor(NoiseNISQ, 3, nil)
	res, err := ex.Execute(bellSpec(), 200)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Fidelity >= 1 || res.Fidelity <= 0 {
		t.Errorf("noisy fidelity = %v", res.Fidelity)
	}
}

func TestExecuteRejectsTooManyQubits(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 4, nil)
	spec := &CircuitSpec{Qubits: maxRegisterQubits + 1}
	_, err := ex.Execute(spec, 10)
	var tooMany *TooManyQubitsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("err = %v, want *TooManyQubitsError", err)
	}
	if tooMany.Requested != maxRegisterQubits+1 || tooMany.Max != maxRegisterQubits {
		t.Errorf("error fields: %+v", tooMany)
	}
}

func TestExecuteRejectsInvalidSpec(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 5, nil)
	spec := &CircuitSpec{
		Qubits:       1,
		Instructions: []GateInstruction{{Name: "warp", Qubits: []int{0}}},
	}
	var ug *UnsupportedGateError
	if _, err := ex.Execute(spec, 10); !errors.As(err, &ug) {
		t.Errorf("err = %v, want *UnsupportedGateError", err)
	}

	if _, err := ex.Execute(bellSpec(), 0); err == nil {
		t.Error("zero shots accepted")
	}
}

func TestJobLifecycle(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 6, nil)
	job, err := ex.SubmitJob(bellSpec(), 100)
	if err != nil {
		t.Fatalf("SubmitJob: %v", err)
	}
	if job.ID == "" {
		t.Error("job has no ID")
	}
	if job.Status != JobCompleted {
		t.Errorf("status = %s, want completed", job.Status)
	}
	if job.Result == nil || job.Result.Shots != 100 {
		t.Errorf("result = %+v", job.Result)
	}

	fetched, err := ex.GetJobStatus(job.ID)
	if err != nil {
		t.Fatalf("GetJobStatus: %v", err)
	}
	if fetched.ID != job.ID {
		t.Errorf("fetched job %s, want %s", fetched.ID, job.ID)
	}

	// Cancelling a finished job leaves it finished.
	cancelled, err := ex.CancelJob(job.ID)
	if err != nil {
		t.Fatalf("CancelJob: %v", err)
	}
	if cancelled.Status != JobCompleted {
		t.Errorf("cancel changed terminal status to %s", cancelled.Status)
	}
}

func TestFailedJobRecordsError(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 7, nil)
	bad := &CircuitSpec{
		Qubits:       1,
		Instructions: []GateInstruction{{Name: "warp", Qubits: []int{0}}},
	}
	job, err := ex.SubmitJob(bad, 10)
	if err != nil {
		t.Fatalf("SubmitJob: %v", err)
	}
	if job.Status != JobFailed {
		t.Errorf("status = %s, want failed", job.Status)
	}
	var ug *UnsupportedGateError
	if !errors.As(job.Error, &ug) {
		t.Errorf("job error = %v", job.Error)
	}
}

func TestJobNotFound(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 8, nil)
	if _, err := ex.GetJobStatus("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("GetJobStatus err = %v", err)
	}
	if _, err := ex.CancelJob("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("CancelJob err = %v", err)
	}
}

func TestQueueStatusLocal(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 9, nil)
	info, err := ex.QueueStatus()
	if err != nil {
		t.Fatalf("QueueStatus: %v", err)
	}
	if !info.Available || info.PendingJobs != 0 || info.Backend != "local" {
		t.Errorf("queue info = %+v", info)
	}
}

// fakeClock records sleeps without waiting.
type fakeClock struct {
	sleeps []time.Duration
}

func (c *fakeClock) Sleep(d time.Duration) { c.sleeps = append(c.sleeps, d) }

func TestAwaitJobTerminalImmediately(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 10, nil)
	job, err := ex.SubmitJob(bellSpec(), 10)
	if err != nil {
		t.Fatalf("SubmitJob: %v", err)
	}

	clock := &fakeClock{}
	got, err := AwaitJob(context.Background(), ex, job.ID, time.Second, clock)
	if err != nil {
		t.Fatalf("AwaitJob: %v", err)
	}
	if got.Status != JobCompleted {
		t.Errorf("status = %s", got.Status)
	}
	// Local jobs are already terminal, so the poll loop never sleeps.
	if len(clock.sleeps) != 0 {
		t.Errorf("slept %d times", len(clock.sleeps))
	}
}

func TestAwaitJobUnknownID(t *testing.T) {
	ex := NewLocalExecutor(NoiseIdeal, 11, nil)
	if _, err := AwaitJob(context.Background(), ex, "nope", time.Second, &fakeClock{}); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("err = %v", err)
	}
}

// stuckExecutor reports a job that never finishes, for exercising the
// polling and cancellation path.
type stuckExecutor struct {
	job *Job
}

func (s *stuckExecutor) Execute(spec *CircuitSpec, shots int) (*ExecutionResult, error) {
	return nil, ErrExecutorUnavailable
}
func (s *stuckExecutor) SubmitJob(spec *CircuitSpec, shots int) (*Job, error) { return s.job, nil }
func (s *stuckExecutor) GetJobStatus(id string) (*Job, error)                 { return s.job, nil }
func (s *stuckExecutor) CancelJob(id string) (*Job, error)                    { return s.job, nil }
func (s *stuckExecutor) QueueStatus() (*QueueInfo, error) {
	return &QueueInfo{PendingJobs: 1, Available: true, Backend: "stuck"}, nil
}

func TestAwaitJobContextCancel(t *testing.T) {
	ex := &stuckExecutor{job: &Job{ID: "stuck-1", Status: JobRunning}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clock := &fakeClock{}
	job, err := AwaitJob(ctx, ex, "stuck-1", 100*time.Millisecond, clock)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if job == nil || job.Status != JobRunning {
		t.Errorf("job = %+v", job)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("slept after cancellation: %v", clock.sleeps)
	}
}
