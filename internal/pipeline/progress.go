package pipeline

// NoPercent marks a progress update that only carries status text.
const NoPercent = -1.0

// ProgressFunc receives best-effort progress notifications. Implementations
// must be safe for concurrent use and must not block.
type ProgressFunc func(percent float64, status string)

func (p *Processor) report(percent float64, status string) {
	if p.progress != nil {
		p.progress(percent, status)
	}
}
