package execution_test

import (
	"sync"
	"testing"

	"github.com/reglet-dev/breachgate/internal/domain/execution"
	"github.com/reglet-dev/breachgate/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunResult_FinalizeSortsAndSummarizes(t *testing.T) {
	r := execution.NewRunResult("lobby", "1")

	r.AddInteractionResult(execution.InteractionResult{ID: "c", Index: 2, Status: values.StatusSkipped})
	r.AddInteractionResult(execution.InteractionResult{ID: "a", Index: 0, Status: values.StatusPass, SlotOpened: true, InsertedID: "x"})
	r.AddInteractionResult(execution.InteractionResult{ID: "b", Index: 1, Status: values.StatusFail, SlotOpened: true})
	r.AddInteractionResult(execution.InteractionResult{ID: "d", Index: 3, Status: values.StatusError})

	r.Finalize()

	require.Len(t, r.Interactions, 4)
	assert.Equal(t, "a", r.Interactions[0].ID)
	assert.Equal(t, "d", r.Interactions[3].ID)

	assert.Equal(t, execution.ResultSummary{
		TotalInteractions:   4,
		PassedInteractions:  1,
		FailedInteractions:  1,
		ErrorInteractions:   1,
		SkippedInteractions: 1,
		SlotsOpened:         2,
		Replacements:        1,
	}, r.Summary)
	assert.False(t, r.EndTime.Before(r.StartTime))
}

func TestRunResult_Status(t *testing.T) {
	r := execution.NewRunResult("lobby", "")
	assert.Equal(t, values.StatusPass, r.Status(), "empty run passes")

	r.AddInteractionResult(execution.InteractionResult{ID: "a", Status: values.StatusSkipped})
	assert.Equal(t, values.StatusPass, r.Status(), "skips do not change the status")

	r.AddInteractionResult(execution.InteractionResult{ID: "b", Status: values.StatusError})
	assert.Equal(t, values.StatusError, r.Status())

	r.AddInteractionResult(execution.InteractionResult{ID: "c", Status: values.StatusFail})
	assert.Equal(t, values.StatusFail, r.Status())
}

func TestRunResult_ConcurrentAdd(t *testing.T) {
	r := execution.NewRunResult("lobby", "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.AddInteractionResult(execution.InteractionResult{Index: i, Status: values.StatusPass})
		}(i)
	}
	wg.Wait()
	r.Finalize()

	assert.Equal(t, 50, r.Summary.TotalInteractions)
	assert.Equal(t, 0, r.Interactions[0].Index)
}

func TestRunResult_GetInteractionResultByID(t *testing.T) {
	r := execution.NewRunResult("lobby", "")
	r.AddInteractionResult(execution.InteractionResult{ID: "a"})

	assert.NotNil(t, r.GetInteractionResultByID("a"))
	assert.Nil(t, r.GetInteractionResultByID("z"))
	assert.False(t, r.GetID().IsZero())
}
