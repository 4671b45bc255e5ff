package pipeline

import (
	"context"
	"testing"

	"github.com/orizehavi/listingforge/internal/errors"
	"github.com/orizehavi/listingforge/internal/listing"
)

func TestRunBatchCompletesAllRuns(t *testing.T) {
	f := newFixture(t, listing.AspectPortrait)
	r := f.runner(t)

	batch := r.RunBatch(context.Background(), 4, 2, "")
	if batch.Err != nil {
		t.Fatalf("RunBatch reported errors: %v", batch.Err)
	}
	if len(batch.Results) != 4 {
		t.Fatalf("RunBatch produced %d results, want 4", len(batch.Results))
	}

	seen := make(map[string]bool)
	for _, res := range batch.Results {
		if res.State != StateListingComplete {
			t.Errorf("run %s finished in state %s", res.RunID, res.State)
		}
		if seen[res.Dir] {
			t.Errorf("two runs share the listing directory %s", res.Dir)
		}
		seen[res.Dir] = true
	}
}

func TestRunBatchCollectsFailuresWithoutStopping(t *testing.T) {
	f := newFixture(t, listing.AspectPortrait)
	f.text.conceptErr = errors.NewGenerationError("quota exhausted", nil).WithStage("concept")
	r := f.runner(t)

	batch := r.RunBatch(context.Background(), 3, 2, "")
	if batch.Err == nil {
		t.Fatal("RunBatch should surface run errors")
	}
	if len(batch.Results) != 0 {
		t.Errorf("RunBatch produced %d results, want 0", len(batch.Results))
	}
	if f.text.conceptCalls != 3 {
		t.Errorf("concept attempted %d times, want 3 (batch keeps going)", f.text.conceptCalls)
	}
}

func TestRunBatchZeroCount(t *testing.T) {
	f := newFixture(t, listing.AspectPortrait)
	r := f.runner(t)

	batch := r.RunBatch(context.Background(), 0, 2, "")
	if batch.Err != nil || len(batch.Results) != 0 {
		t.Errorf("RunBatch(0) = %+v, want empty result", batch)
	}
}
