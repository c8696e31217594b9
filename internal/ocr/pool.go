package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// MaxWorkers caps the pool regardless of available cores.
const MaxWorkers = 8

// PoolState tracks the one-time initialization of a Pool.
type PoolState int32

const (
	PoolUninitialized PoolState = iota
	PoolInitializing
	PoolReady
	PoolFailed
)

func (s PoolState) String() string {
	switch s {
	case PoolUninitialized:
		return "uninitialized"
	case PoolInitializing:
		return "initializing"
	case PoolReady:
		return "ready"
	case PoolFailed:
		return "failed"
	}
	return fmt.Sprintf("PoolState(%d)", int32(s))
}

// ErrPoolClosed is returned by Recognize after Close.
var ErrPoolClosed = errors.New("ocr pool closed")

type job struct {
	ctx  context.Context
	img  []byte
	resp chan<- jobResult
}

type jobResult struct {
	text string
	err  error
}

// Pool is a shared set of pre-warmed recognition workers. The engines are
// created on the first Recognize call and reused until Close; later callers
// wait for, and then share, that single initialization.
type Pool struct {
	factory EngineFactory
	size    int
	logger  *slog.Logger

	once    sync.Once
	state   atomic.Int32
	initErr error

	jobs chan job
	done chan struct{}
	wg   sync.WaitGroup

	closeOnce sync.Once
	engines   []Engine
}

type PoolOption func(*Pool)

// WithPoolSize overrides the worker count; values above MaxWorkers are capped.
func WithPoolSize(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.size = min(n, MaxWorkers)
		}
	}
}

func WithPoolLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPool returns an uninitialized pool sized min(NumCPU, MaxWorkers).
func NewPool(factory EngineFactory, opts ...PoolOption) *Pool {
	p := &Pool{
		factory: factory,
		size:    min(runtime.NumCPU(), MaxWorkers),
		logger:  slog.Default(),
		jobs:    make(chan job),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Pool) State() PoolState { return PoolState(p.state.Load()) }

func (p *Pool) Size() int { return p.size }

func (p *Pool) ensure(ctx context.Context) error {
	p.once.Do(func() {
		select {
		case <-p.done:
			p.initErr = ErrPoolClosed
			p.state.Store(int32(PoolFailed))
			return
		default:
		}
		p.state.Store(int32(PoolInitializing))
		start := time.Now()

		// Warm-up belongs to the pool, not to whichever caller happened to trigger it.
		engines := make([]Engine, p.size)
		g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
		for i := range engines {
			g.Go(func() error {
				e, err := p.factory(gctx)
				if err != nil {
					return fmt.Errorf("ocr worker %d: %w", i+1, err)
				}
				engines[i] = e
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			for _, e := range engines {
				if e != nil {
					_ = e.Close()
				}
			}
			p.initErr = err
			p.state.Store(int32(PoolFailed))
			p.logger.Error("ocr pool init failed", "workers", p.size, "error", err)
			return
		}

		p.engines = engines
		for i, e := range engines {
			p.wg.Add(1)
			go p.work(i+1, e)
		}
		p.state.Store(int32(PoolReady))
		p.logger.Info("ocr pool ready", "workers", p.size, "elapsed_ms", time.Since(start).Milliseconds())
	})
	return p.initErr
}

func (p *Pool) work(id int, e Engine) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case j := <-p.jobs:
			if err := j.ctx.Err(); err != nil {
				j.resp <- jobResult{err: err}
				continue
			}
			start := time.Now()
			text, err := e.Recognize(j.ctx, j.img)
			p.logger.Debug("ocr job done", "worker_id", id, "chars", len(text), "duration_ms", time.Since(start).Milliseconds())
			j.resp <- jobResult{text: text, err: err}
		}
	}
}

// Recognize submits one image and waits for its text.
func (p *Pool) Recognize(ctx context.Context, img []byte) (string, error) {
	if err := p.ensure(ctx); err != nil {
		return "", err
	}
	resp := make(chan jobResult, 1)
	select {
	case p.jobs <- job{ctx: ctx, img: img, resp: resp}:
	case <-p.done:
		return "", ErrPoolClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case r := <-resp:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the workers and releases their engines. Jobs already picked up finish first.
func (p *Pool) Close() error {
	var errs []error
	p.closeOnce.Do(func() {
		close(p.done)
		// Waits out an initialization in progress; prevents a later one.
		p.once.Do(func() {
			p.initErr = ErrPoolClosed
			p.state.Store(int32(PoolFailed))
		})
		p.wg.Wait()
		for _, e := range p.engines {
			if err := e.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
