package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job asks for one label file to be processed.
type Job struct {
	ID          uuid.UUID
	Path        string
	SubmittedAt time.Time
	TraceID     string
}

// NewJob creates a job whose trace id is its own id, so the run it starts
// carries the job id in logs and in the run report.
func NewJob(path string) Job {
	id := uuid.New()
	return Job{ID: id, Path: path, SubmittedAt: time.Now().UTC(), TraceID: id.String()}
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Handler processes the file named by a job.
type Handler interface {
	HandleFile(ctx context.Context, path string) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, path string) error

func (f HandlerFunc) HandleFile(ctx context.Context, path string) error { return f(ctx, path) }
