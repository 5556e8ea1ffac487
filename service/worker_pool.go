package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Aashish23092/finextract/dto"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrTimeout is returned when an extraction call outlives the pool timeout.
	ErrTimeout = errors.New("extraction timed out")
	// ErrQueueFull is returned by Submit when no more jobs can be queued.
	ErrQueueFull = errors.New("job queue is full")
)

// Task is one extraction call.
type Task func(ctx context.Context) (interface{}, error)

type job struct {
	resp dto.JobResponse
	task Task
}

// WorkerPool bounds concurrent extraction calls and applies a per-call
// timeout. Synchronous callers use Run; Submit queues a job whose state can
// be polled with Job until it expires from the store.
type WorkerPool struct {
	sem     *semaphore.Weighted
	timeout time.Duration
	workers int
	queue   chan *job
	jobs    *cache.Cache
	mu      sync.Mutex
	log     zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorkerPool(workers, queueSize int, timeout, jobTTL time.Duration, log zerolog.Logger) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{
		sem:     semaphore.NewWeighted(int64(workers)),
		timeout: timeout,
		workers: workers,
		queue:   make(chan *job, queueSize),
		jobs:    cache.New(jobTTL, 2*jobTTL),
		log:     log,
	}
}

// Start launches the goroutines that drain the job queue.
func (p *WorkerPool) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case j, ok := <-p.queue:
					if !ok {
						return
					}
					p.process(workerCtx, j)
				}
			}
		}()
	}
}

// Stop cancels the workers and waits for them to return.
func (p *WorkerPool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// Timeout is the per-call limit.
func (p *WorkerPool) Timeout() time.Duration {
	return p.timeout
}

// Run executes task once a slot is free. The pool timeout covers both the
// wait for a slot and the task itself. On expiry the call is abandoned, not
// retried: a started task keeps its slot until it really returns and its
// result is discarded.
func (p *WorkerPool) Run(ctx context.Context, task Task) (interface{}, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.sem.Acquire(callCtx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrTimeout
		}
		return nil, err
	}

	type outcome struct {
		val interface{}
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("extraction panicked: %v", r)}
			}
		}()
		val, err := task(callCtx)
		done <- outcome{val, err}
	}()

	select {
	case out := <-done:
		return out.val, out.err
	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, callCtx.Err()
	}
}

// Submit queues task and returns its job id.
func (p *WorkerPool) Submit(kind, filename string, task Task) (string, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	j := &job{
		resp: dto.JobResponse{
			ID:        uuid.New().String(),
			Kind:      kind,
			Filename:  filename,
			Status:    dto.JobQueued,
			CreatedAt: now,
			UpdatedAt: now,
		},
		task: task,
	}
	p.save(j.resp)

	select {
	case p.queue <- j:
		return j.resp.ID, nil
	default:
		p.update(j, dto.JobFailed, nil, ErrQueueFull.Error())
		return "", fmt.Errorf("%w (%d)", ErrQueueFull, cap(p.queue))
	}
}

// Job returns a snapshot of a job's state.
func (p *WorkerPool) Job(id string) (dto.JobResponse, bool) {
	v, ok := p.jobs.Get(id)
	if !ok {
		return dto.JobResponse{}, false
	}
	return v.(dto.JobResponse), true
}

// QueueDepth returns current queue depth.
func (p *WorkerPool) QueueDepth() int {
	return len(p.queue)
}

func (p *WorkerPool) process(ctx context.Context, j *job) {
	log := p.log.With().Str("job_id", j.resp.ID).Str("kind", j.resp.Kind).Logger()
	p.update(j, dto.JobRunning, nil, "")

	result, err := p.Run(ctx, j.task)
	switch {
	case errors.Is(err, ErrTimeout):
		log.Warn().Dur("timeout", p.timeout).Msg("job timed out")
		p.update(j, dto.JobTimeout, nil, TimeoutMessage(p.timeout))
	case err != nil:
		log.Error().Err(err).Msg("job failed")
		p.update(j, dto.JobFailed, nil, err.Error())
	default:
		log.Info().Msg("job completed")
		p.update(j, dto.JobCompleted, result, "")
	}
}

func (p *WorkerPool) update(j *job, status dto.JobStatus, result interface{}, errMsg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	j.resp.Status = status
	j.resp.Result = result
	j.resp.Error = errMsg
	j.resp.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	p.jobs.SetDefault(j.resp.ID, j.resp)
}

func (p *WorkerPool) save(resp dto.JobResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs.SetDefault(resp.ID, resp)
}

// TimeoutMessage is the user-facing diagnostic for an abandoned scan.
func TimeoutMessage(timeout time.Duration) string {
	return fmt.Sprintf("OCR timed out after %d s. Try a smaller or clearer file.", int(timeout.Seconds()))
}
