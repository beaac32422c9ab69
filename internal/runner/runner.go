package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/framestamp/framestamp/internal/compose"
	"github.com/framestamp/framestamp/internal/sequence"
)

// ErrRunInProgress is returned when Run is called while a previous run on
// the same Runner has not finished. The caller must discard or cancel the
// prior run before starting a new one.
var ErrRunInProgress = errors.New("a run is already in flight")

// SequenceConfig drives label generation for a run.
type SequenceConfig struct {
	Prefix      string
	StartNumber int
	Digits      int
}

// Config holds per-run execution settings.
type Config struct {
	// Workers sets the number of parallel cell workers (<=1 = sequential).
	Workers int
	// Progress receives run progress; nil disables reporting.
	Progress ProgressCallback
}

// Runner drives the cartesian product of ordered sources and output specs
// through the composer, isolating per-cell failures and emitting
// monotonically increasing progress.
type Runner struct {
	composer *compose.Composer
	running  atomic.Bool
}

// New creates a runner rendering through the given composer.
func New(composer *compose.Composer) *Runner {
	return &Runner{composer: composer}
}

// cellJob addresses one (item, spec) pair by its position in the output
// collection: items outer, specs inner.
type cellJob struct {
	index int
	item  SourceItem
	spec  compose.OutputSpec
}

// Run renders every (item, spec) cell and returns the complete ordered
// collection. Cell failures become error cells; only overlap, cancellation
// and process-fatal conditions surface as an error from Run itself.
func (r *Runner) Run(
	ctx context.Context,
	items []SourceItem,
	specs []compose.OutputSpec,
	style compose.StampStyle,
	seq SequenceConfig,
	cfg Config,
) ([]RenderCell, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	progress := cfg.Progress
	if progress == nil {
		progress = NoOpProgressCallback{}
	}

	total := len(items) * len(specs)
	progress.OnStart(total)
	defer progress.OnComplete()

	if total == 0 {
		return []RenderCell{}, nil
	}

	jobs := make([]cellJob, 0, total)
	for i, item := range items {
		for j, spec := range specs {
			jobs = append(jobs, cellJob{index: i*len(specs) + j, item: item, spec: spec})
		}
	}

	if cfg.Workers <= 1 {
		return r.runSequential(ctx, jobs, style, seq, total, progress)
	}
	return r.runParallel(ctx, jobs, style, seq, total, cfg.Workers, progress)
}

func (r *Runner) runSequential(
	ctx context.Context,
	jobs []cellJob,
	style compose.StampStyle,
	seq SequenceConfig,
	total int,
	progress ProgressCallback,
) ([]RenderCell, error) {
	cells := make([]RenderCell, total)
	done := 0
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell := r.renderCell(job, style, seq)
		cells[job.index] = cell
		done++
		progress.OnProgress(done, total)
		if cell.Err != nil {
			progress.OnError(done, cell.Err)
		}
	}
	return cells, nil
}

func (r *Runner) runParallel(
	ctx context.Context,
	jobs []cellJob,
	style compose.StampStyle,
	seq SequenceConfig,
	total, workers int,
	progress ProgressCallback,
) ([]RenderCell, error) {
	if workers > total {
		workers = total
	}

	jobCh := make(chan cellJob, total)
	type indexed struct {
		index int
		cell  RenderCell
	}
	resultCh := make(chan indexed, total)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job, ok := <-jobCh:
					if !ok {
						return
					}
					cell := r.renderCell(job, style, seq)
					select {
					case resultCh <- indexed{index: job.index, cell: cell}:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	cells := make([]RenderCell, total)
	done := 0
	for res := range resultCh {
		cells[res.index] = res.cell
		done++
		progress.OnProgress(done, total)
		if res.cell.Err != nil {
			progress.OnError(done, res.cell.Err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cells, nil
}

// renderCell composes one cell. Label and sequence number depend only on
// the (item, spec) identity, never on execution order.
func (r *Runner) renderCell(job cellJob, style compose.StampStyle, seq SequenceConfig) RenderCell {
	label := sequence.Label(seq.Prefix, seq.StartNumber, job.item.Position, seq.Digits)
	cell := RenderCell{
		ItemID:   job.item.ID,
		SpecKey:  job.spec.Key,
		Sequence: seq.StartNumber + job.item.Position,
		Label:    label,
		Width:    job.spec.Width,
		Height:   job.spec.Height,
	}

	encoded, err := r.composer.Compose(job.item.Raster, job.spec, style, label)
	if err != nil {
		cell.Err = err
		return cell
	}
	cell.Encoded = encoded
	return cell
}
