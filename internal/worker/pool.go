package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Job is one unit of background work submitted to the pool.
type Job struct {
	ID   string
	Name string
	Run  func(ctx context.Context) error
}

type WorkingPool struct {
	NumWorkers int
	jobChan    chan Job
}

func NewWorkingPool(numWorkers, queueSize int) *WorkingPool {
	return &WorkingPool{
		NumWorkers: numWorkers,
		jobChan:    make(chan Job, queueSize),
	}
}

// SubmitJob enqueues a job, failing when the queue is full or the context is
// already cancelled.
func (p *WorkingPool) SubmitJob(ctx context.Context, job Job) error {
	select {
	case p.jobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start launches the workers and blocks until ctx is cancelled and every
// worker drained its current job.
func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(ctx, &workerWg, i+1)
	}

	<-ctx.Done()

	slog.Info("WorkingPool shutdown signaled, closing job channel")
	close(p.jobChan)
	workerWg.Wait()
	slog.Info("All workers stopped")
}

func (p *WorkingPool) worker(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-p.jobChan:
			if !ok {
				return
			}
			p.safeExecution(ctx, job, id)
		case <-ctx.Done():
			return
		}
	}
}

// safeExecution runs one job, recovering panics so a failing job never kills
// the worker.
func (p *WorkingPool) safeExecution(ctx context.Context, job Job, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic recovered in job", "worker", workerID, "job", job.Name, "panic", r)
		}
	}()

	if err := job.Run(ctx); err != nil {
		slog.Error("Job failed", "worker", workerID, "job", job.Name, "job_id", job.ID, "error", err)
		return
	}
	slog.Info("Job completed", "worker", workerID, "job", job.Name, "job_id", job.ID)
}
