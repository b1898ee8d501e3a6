package mbqcirq

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// LocalExecutor runs compiled programs on the exact simulator, one goroutine
// per submitted job. It stands in for a hardware execution service: jobs are
// polled, never waited on, and cancellation is best-effort.
type LocalExecutor struct {
	seed int64
	next atomic.Int64
	log  *slog.Logger
}

// NewLocalExecutor returns an executor whose jobs draw deterministic,
// distinct seeds derived from the given base seed. A nil logger falls back
// to slog.Default().
func NewLocalExecutor(seed int64, logger *slog.Logger) *LocalExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalExecutor{seed: seed, log: logger}
}

// Job is a handle to one asynchronous execution. Results are retrieved by
// polling; Result never blocks.
type Job struct {
	id       string
	compiled *CompiledProgram
	shots    int
	cancel   context.CancelFunc
	done     chan struct{}

	mu     sync.Mutex
	counts map[string]int
	err    error
}

// Submit starts the program in the background and returns immediately.
func (e *LocalExecutor) Submit(cp *CompiledProgram, shots int) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	j := &Job{
		id:       uuid.NewString(),
		compiled: cp,
		shots:    shots,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	sim := NewSimulator(e.seed + e.next.Add(1))
	e.log.Info("job submitted",
		"job_id", j.id,
		"shots", shots,
		"qubits", cp.Program.NumQubits,
		"registers", cp.Program.NumRegisters)

	go func() {
		defer close(j.done)
		res, err := sim.RunContext(ctx, cp.Program, j.shots)
		j.mu.Lock()
		defer j.mu.Unlock()
		if err != nil {
			j.err = err
			e.log.Error("job failed", "job_id", j.id, "error", err)
			return
		}
		j.counts = res.Counts
		e.log.Info("job done", "job_id", j.id)
	}()
	return j
}

// ID returns the job's unique identifier.
func (j *Job) ID() string {
	return j.id
}

// IsDone reports whether the job has finished (successfully or not).
func (j *Job) IsDone() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Result returns the histogram of a completed job, decoded to output-node
// keys unless raw is true. The second return is false while the job is
// still running; a completed-but-failed job returns (nil, true) and the
// failure is available from Err.
func (j *Job) Result(raw bool) (map[string]int, bool) {
	if !j.IsDone() {
		return nil, false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil || j.counts == nil {
		return nil, true
	}
	if raw {
		return j.counts, true
	}
	decoded, err := j.compiled.Decode(j.counts)
	if err != nil {
		j.err = err
		return nil, true
	}
	return decoded, true
}

// Err returns the job's failure, if any, once it is done.
func (j *Job) Err() error {
	if !j.IsDone() {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Cancel asks the running job to stop between shots. Best effort; a job
// cancelled mid-run reports context.Canceled from Err.
func (j *Job) Cancel() {
	j.cancel()
}
