package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// PixelTask is the full sampling-and-shading work for one pixel
type PixelTask struct {
	X, Y int
}

// WorkerPool renders pixel tasks on a fixed set of goroutines
type WorkerPool struct {
	taskQueue  chan PixelTask
	workers    []*Worker
	numWorkers int
	group      errgroup.Group
}

// Worker handles individual pixel tasks. Each worker owns its sampler.
type Worker struct {
	ID           int
	sampler      core.Sampler
	pixelSampler *PixelSampler
	buffer       *ImageBuffer
	progress     *Progress
	taskQueue    <-chan PixelTask
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU; queueSize <= 0 sizes the queue to
// twice the worker count. Worker i draws from its own generator seeded with seed+i.
func NewWorkerPool(pixelSampler *PixelSampler, buffer *ImageBuffer, progress *Progress, numWorkers, queueSize int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize <= 0 {
		queueSize = 2 * numWorkers
	}

	wp := &WorkerPool{
		taskQueue:  make(chan PixelTask, queueSize),
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:           i,
			sampler:      core.NewSeededSampler(seed + int64(i)),
			pixelSampler: pixelSampler,
			buffer:       buffer,
			progress:     progress,
			taskQueue:    wp.taskQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.group.Go(worker.run)
	}
}

// Submit queues a task, blocking until the queue accepts it
func (wp *WorkerPool) Submit(task PixelTask) {
	wp.taskQueue <- task
}

// Wait closes the queue and blocks until every submitted task has finished.
// It returns the first write-once violation reported by any worker.
func (wp *WorkerPool) Wait() error {
	close(wp.taskQueue)
	return wp.group.Wait()
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. It keeps draining the queue after an error so
// that Submit never blocks on a dead worker.
func (w *Worker) run() error {
	var firstErr error
	for task := range w.taskQueue {
		stats := w.pixelSampler.SamplePixel(task.X, task.Y, w.sampler)
		if err := w.buffer.Set(task.X, task.Y, stats); err != nil && firstErr == nil {
			firstErr = err
		}
		w.progress.Increment()
	}
	return firstErr
}
