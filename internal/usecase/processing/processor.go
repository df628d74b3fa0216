package processing

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/adapter/repository"
	"github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/domain/entity"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
	"github.com/vkarasev/catalog-media/internal/pkg/imagepath"
)

type job struct {
	imageID    uuid.UUID
	enqueuedAt time.Time
}

// Processor runs the background image pipeline: a FIFO queue of image
// IDs drained by a fixed pool of workers. Every accepted upload and
// every reprocess request passes through here; nothing processes
// synchronously on the request path.
type Processor struct {
	repo      repository.ImageRepository
	backend   storage.Backend
	extractor storage.MetadataExtractor
	variants  storage.VariantGenerator
	logger    *zap.Logger

	workers     int
	pollTimeout time.Duration

	mu      sync.Mutex
	queue   []job
	running bool

	wake chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewProcessor(
	repo repository.ImageRepository,
	backend storage.Backend,
	extractor storage.MetadataExtractor,
	variants storage.VariantGenerator,
	cfg config.ProcessingConfig,
	logger *zap.Logger,
) *Processor {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		repo:        repo,
		backend:     backend,
		extractor:   extractor,
		variants:    variants,
		logger:      logger,
		workers:     workers,
		pollTimeout: cfg.PollTimeout,
		wake:        make(chan struct{}, workers),
		stop:        make(chan struct{}),
	}
}

func (p *Processor) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.logger.Info("image processing started", zap.Int("workers", p.workers))
}

// Stop prevents further dequeues and waits for in-flight jobs, bounded
// by the context deadline. Queued but unstarted jobs stay in the queue.
func (p *Processor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.mu.Unlock()

	close(p.stop)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("image processing stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stopping processor: %w", ctx.Err())
	}
}

// Enqueue never blocks; the queue is unbounded.
func (p *Processor) Enqueue(imageID uuid.UUID) {
	p.mu.Lock()
	p.queue = append(p.queue, job{imageID: imageID, enqueuedAt: time.Now()})
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

type Status struct {
	QueueSize   int  `json:"queue_size"`
	IsRunning   bool `json:"is_running"`
	WorkerCount int  `json:"worker_count"`
}

func (p *Processor) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		QueueSize:   len(p.queue),
		IsRunning:   p.running,
		WorkerCount: p.workers,
	}
}

// ReprocessFailed re-enqueues every image in error state and returns
// how many were queued. Nothing reprocesses automatically.
func (p *Processor) ReprocessFailed(ctx context.Context) (int, error) {
	failed, err := p.repo.ListByStatus(ctx, entity.StatusError)
	if err != nil {
		return 0, fmt.Errorf("listing failed images: %w", err)
	}
	for _, image := range failed {
		p.Enqueue(image.ID)
	}
	return len(failed), nil
}

func (p *Processor) dequeue() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || len(p.queue) == 0 {
		return job{}, false
	}
	j := p.queue[0]
	p.queue = p.queue[1:]
	return j, true
}

func (p *Processor) worker() {
	defer p.wg.Done()
	for {
		j, ok := p.dequeue()
		if ok {
			p.process(j)
			continue
		}
		select {
		case <-p.stop:
			return
		case <-p.wake:
		case <-time.After(p.pollTimeout):
		}
	}
}

// process runs on a fresh background context: a job picked up before
// shutdown must finish its writes even when the server context is gone.
func (p *Processor) process(j job) {
	ctx := context.Background()
	start := time.Now()

	image, err := p.repo.GetByID(ctx, j.imageID)
	if err != nil {
		p.logger.Warn("dropping job for unknown image",
			zap.String("image_id", j.imageID.String()), zap.Error(err))
		return
	}

	if !image.Status.CanTransition(entity.StatusProcessing) {
		p.logger.Warn("dropping job for image already processing",
			zap.String("image_id", image.ID.String()),
			zap.String("status", string(image.Status)))
		return
	}

	if err := p.repo.UpdateStatus(ctx, image.ID, entity.StatusProcessing); err != nil {
		p.logger.Error("updating image status",
			zap.String("image_id", image.ID.String()), zap.Error(err))
		return
	}

	if err := p.run(ctx, image); err != nil {
		if markErr := p.repo.MarkError(ctx, image.ID, err.Error()); markErr != nil {
			p.logger.Error("marking image error",
				zap.String("image_id", image.ID.String()), zap.Error(markErr))
		}
		p.logger.Error("image processing failed",
			zap.String("image_id", image.ID.String()), zap.Error(err))
		return
	}

	p.logger.Info("image processed",
		zap.String("image_id", image.ID.String()),
		zap.Duration("duration", time.Since(start)),
		zap.Duration("queued", start.Sub(j.enqueuedAt)))
}

func (p *Processor) run(ctx context.Context, image *entity.Image) error {
	exists, err := p.backend.Exists(ctx, image.Path)
	if err != nil {
		return fmt.Errorf("checking source: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrSourceMissing, image.Path)
	}

	data, err := p.backend.Read(ctx, image.Path)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	meta, err := p.extractor.Extract(data)
	if err != nil {
		return fmt.Errorf("extracting metadata: %w", err)
	}

	manifest := make(map[string]string, len(p.variants.Variants()))
	for _, variant := range p.variants.Variants() {
		resized, err := p.variants.Generate(data, variant)
		if err != nil {
			return fmt.Errorf("generating %s variant: %w", variant, err)
		}
		variantPath := imagepath.VariantPath(image.Path, variant)
		if err := p.backend.Save(ctx, variantPath, bytes.NewReader(resized), "image/jpeg", int64(len(resized))); err != nil {
			return fmt.Errorf("saving %s variant: %w", variant, err)
		}
		manifest[variant] = variantPath
	}

	now := time.Now().UTC()
	image.Status = entity.StatusReady
	image.MimeType = meta.MimeType
	image.Width = meta.Width
	image.Height = meta.Height
	image.Variants = manifest
	image.ProcessedAt = &now

	if err := p.repo.UpdateProcessingResult(ctx, image); err != nil {
		return fmt.Errorf("persisting processing result: %w", err)
	}
	return nil
}
