package runner

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framestamp/framestamp/internal/compose"
)

type recordingProgress struct {
	started  []int
	progress []int
	totals   []int
	errs     []error
	complete int
}

func (r *recordingProgress) OnStart(total int) { r.started = append(r.started, total) }
func (r *recordingProgress) OnProgress(done, total int) {
	r.progress = append(r.progress, done)
	r.totals = append(r.totals, total)
}
func (r *recordingProgress) OnComplete()                 { r.complete++ }
func (r *recordingProgress) OnError(done int, err error) { r.errs = append(r.errs, err) }

func testItems(n int) []SourceItem {
	items := make([]SourceItem, n)
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 32, 24))
		for y := 0; y < 24; y++ {
			for x := 0; x < 32; x++ {
				img.Set(x, y, color.White)
			}
		}
		items[i] = SourceItem{ID: "img" + string(rune('a'+i)) + ".png", Raster: img, Position: i}
	}
	return items
}

func testSpecs() []compose.OutputSpec {
	return []compose.OutputSpec{
		{Key: "landscape", Width: 96, Height: 54, FontSize: 10, OffsetX: 4, OffsetY: 4},
		{Key: "portrait", Width: 50, Height: 75, FontSize: 10, OffsetX: 4, OffsetY: 4},
	}
}

func testRunStyle() compose.StampStyle {
	return compose.StampStyle{
		FontFamily: "Go",
		TextColor:  "#FFFFFF",
		Padding:    2,
	}
}

func newTestRunner() *Runner {
	return New(compose.NewComposer(compose.FormatPNG, 1))
}

func TestRunner_CellAccounting(t *testing.T) {
	r := newTestRunner()
	items := testItems(3)
	specs := testSpecs()
	progress := &recordingProgress{}

	cells, err := r.Run(context.Background(), items, specs, testRunStyle(),
		SequenceConfig{Prefix: "EP.", StartNumber: 1, Digits: 2},
		Config{Progress: progress})
	require.NoError(t, err)

	require.Len(t, cells, 6)
	assert.Equal(t, []int{6}, progress.started)
	assert.Equal(t, 1, progress.complete)

	// Progress strictly increasing from 1 to total.
	require.Len(t, progress.progress, 6)
	for i, done := range progress.progress {
		assert.Equal(t, i+1, done)
		assert.Equal(t, 6, progress.totals[i])
	}

	// Unique (item, spec) pairs, exactly one of Encoded/Err populated.
	seen := make(map[[2]string]bool)
	for i := range cells {
		key := [2]string{cells[i].ItemID, cells[i].SpecKey}
		assert.False(t, seen[key], "duplicate cell %v", key)
		seen[key] = true
		assert.True(t, (cells[i].Encoded != nil) != (cells[i].Err != nil),
			"cell %v must have exactly one of encoded/err", key)
	}
}

func TestRunner_SequenceNumbersIdenticalAcrossSpecs(t *testing.T) {
	r := newTestRunner()
	items := testItems(3)
	specs := testSpecs()

	cells, err := r.Run(context.Background(), items, specs, testRunStyle(),
		SequenceConfig{Prefix: "EP.", StartNumber: 5, Digits: 2}, Config{})
	require.NoError(t, err)

	byItem := make(map[string][]RenderCell)
	for _, c := range cells {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	for id, group := range byItem {
		require.Len(t, group, len(specs), "item %s", id)
		for _, c := range group {
			assert.Equal(t, group[0].Sequence, c.Sequence)
			assert.Equal(t, group[0].Label, c.Label)
		}
	}

	// startNumber=5, position i => sequence 5+i.
	for _, c := range cells {
		if c.ItemID == items[0].ID {
			assert.Equal(t, 5, c.Sequence)
			assert.Equal(t, "EP.05", c.Label)
		}
		if c.ItemID == items[2].ID {
			assert.Equal(t, 7, c.Sequence)
			assert.Equal(t, "EP.07", c.Label)
		}
	}
}

func TestRunner_ErrorIsolation(t *testing.T) {
	r := newTestRunner()
	items := testItems(2)
	items[1].Raster = nil // decode failure for the second source
	items[1].ID = "corrupt.png"
	specs := testSpecs()
	progress := &recordingProgress{}

	cells, err := r.Run(context.Background(), items, specs, testRunStyle(),
		SequenceConfig{Prefix: "EP.", StartNumber: 1, Digits: 2},
		Config{Progress: progress})
	require.NoError(t, err)
	require.Len(t, cells, 4)

	var good, bad int
	for i := range cells {
		switch cells[i].ItemID {
		case "corrupt.png":
			require.Error(t, cells[i].Err)
			assert.ErrorIs(t, cells[i].Err, compose.ErrDecode)
			assert.Equal(t, "decode", cells[i].ErrorKind())
			assert.Nil(t, cells[i].Encoded)
			bad++
		default:
			require.NoError(t, cells[i].Err)
			assert.NotEmpty(t, cells[i].Encoded)
			good++
		}
	}
	assert.Equal(t, 2, good)
	assert.Equal(t, 2, bad)
	assert.Len(t, progress.errs, 2)
	assert.Len(t, progress.progress, 4)
}

func TestRunner_SingleInFlight(t *testing.T) {
	r := newTestRunner()
	r.running.Store(true)

	_, err := r.Run(context.Background(), testItems(1), testSpecs(), testRunStyle(),
		SequenceConfig{Digits: 1}, Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunInProgress)

	// Released flag allows a new run.
	r.running.Store(false)
	_, err = r.Run(context.Background(), testItems(1), testSpecs(), testRunStyle(),
		SequenceConfig{Digits: 1}, Config{})
	require.NoError(t, err)
}

func TestRunner_ParallelMatchesSequential(t *testing.T) {
	items := testItems(4)
	specs := testSpecs()
	seq := SequenceConfig{Prefix: "EP.", StartNumber: 1, Digits: 3}

	seqCells, err := newTestRunner().Run(context.Background(), items, specs, testRunStyle(), seq, Config{})
	require.NoError(t, err)

	progress := &recordingProgress{}
	parCells, err := newTestRunner().Run(context.Background(), items, specs, testRunStyle(), seq,
		Config{Workers: 4, Progress: progress})
	require.NoError(t, err)

	require.Len(t, parCells, len(seqCells))
	for i := range seqCells {
		assert.Equal(t, seqCells[i].ItemID, parCells[i].ItemID)
		assert.Equal(t, seqCells[i].SpecKey, parCells[i].SpecKey)
		assert.Equal(t, seqCells[i].Label, parCells[i].Label)
		assert.Equal(t, seqCells[i].Sequence, parCells[i].Sequence)
	}

	// Monotonic progress under concurrency.
	for i, done := range progress.progress {
		assert.Equal(t, i+1, done)
	}
	assert.Equal(t, len(items)*len(specs), progress.progress[len(progress.progress)-1])
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner().Run(ctx, testItems(2), testSpecs(), testRunStyle(),
		SequenceConfig{Digits: 1}, Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_EmptyInputs(t *testing.T) {
	progress := &recordingProgress{}
	cells, err := newTestRunner().Run(context.Background(), nil, testSpecs(), testRunStyle(),
		SequenceConfig{Digits: 1}, Config{Progress: progress})
	require.NoError(t, err)
	assert.Empty(t, cells)
	assert.Equal(t, []int{0}, progress.started)
}

func TestRunner_Idempotence(t *testing.T) {
	r := newTestRunner()
	items := testItems(2)
	specs := testSpecs()
	seq := SequenceConfig{Prefix: "EP.", StartNumber: 9, Digits: 2}

	first, err := r.Run(context.Background(), items, specs, testRunStyle(), seq, Config{})
	require.NoError(t, err)
	second, err := r.Run(context.Background(), items, specs, testRunStyle(), seq, Config{})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.Equal(t, first[i].Sequence, second[i].Sequence)
		assert.Equal(t, first[i].ItemID, second[i].ItemID)
		assert.Equal(t, first[i].SpecKey, second[i].SpecKey)
	}
}
