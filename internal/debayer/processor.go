package debayer

import (
	"runtime"
	"sync"

	"github.com/DanielMovsesyanBRT/cuda-image-view/internal/rawimage"
)

// Demosaicer converts a Bayer-layout Raw into a 4-channel Raw.
type Demosaicer interface {
	Debayer(raw rawimage.Raw, outputLayout rawimage.Layout) rawimage.Raw
}

// Consumer receives the orchestrator's output batch.
type Consumer interface {
	Consume(batch []rawimage.Raw)
}

// Config configures a Processor.
type Config struct {
	Demosaicer   Demosaicer
	OutputLayout rawimage.Layout
	Workers      int
}

// Processor is the orchestrator: it dispatches a batch of raw images,
// running the configured demosaicer over any Bayer input and passing
// everything else through unchanged, then publishes the result batch
// to a Consumer.
type Processor struct {
	cfg Config
}

// New creates a configured Processor. OutputLayout defaults to BGRA,
// matching the source's default debayer call; Workers defaults to
// runtime.NumCPU().
func New(cfg Config) *Processor {
	if cfg.Demosaicer == nil {
		cfg.Demosaicer = AHD{}
	}
	if cfg.OutputLayout == rawimage.Bayer {
		cfg.OutputLayout = rawimage.BGRA
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Processor{cfg: cfg}
}

// Consume processes batch and publishes the result to out. Bayer
// images are run through the configured demosaicer; everything else is
// passed through unchanged. Fan-out is bounded by cfg.Workers with a
// bounded semaphore plus a WaitGroup, rather than a mutex-guarded
// subscriber registry.
func (p *Processor) Consume(batch []rawimage.Raw, out Consumer) {
	results := make([]rawimage.Raw, len(batch))

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, img := range batch {
		wg.Add(1)
		go func(idx int, r rawimage.Raw) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if r.Layout() == rawimage.Bayer {
				results[idx] = p.cfg.Demosaicer.Debayer(r, p.cfg.OutputLayout)
			} else {
				results[idx] = r
			}
		}(i, img)
	}
	wg.Wait()

	out.Consume(results)
}
