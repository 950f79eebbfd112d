package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id string) *Record {
	now := time.Now()
	return &Record{
		ID:        id,
		Address:   "0x1111111111111111111111111111111111111111",
		Chain:     "ethereum",
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRegistryCreateAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	rec := testRecord("tx-1")
	reg.Create(rec)

	got, ok := reg.Get("tx-1")
	require.True(t, ok)
	assert.Equal(t, "tx-1", got.ID)
	assert.Equal(t, StatusPending, got.Status)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryUpdateCopiesRecord(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Create(testRecord("tx-1"))

	before := reg.Snapshot()

	ok := reg.Update("tx-1", func(r *Record) {
		r.Status = StatusProcessing
		r.ExtrinsicHash = "0xabc"
	})
	require.True(t, ok)

	// The earlier snapshot still holds the old record untouched.
	assert.Equal(t, StatusPending, before["tx-1"].Status)
	assert.Empty(t, before["tx-1"].ExtrinsicHash)

	after, _ := reg.Get("tx-1")
	assert.Equal(t, StatusProcessing, after.Status)
	assert.Equal(t, "0xabc", after.ExtrinsicHash)
	assert.False(t, after.UpdatedAt.Before(before["tx-1"].UpdatedAt))
}

func TestRegistryUpdateMissing(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	assert.False(t, reg.Update("missing", func(r *Record) {
		r.Status = StatusFail
	}))
}

func TestRegistryRemove(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Create(testRecord("tx-1"))

	require.True(t, reg.Remove("tx-1"))
	_, ok := reg.Get("tx-1")
	assert.False(t, ok)

	assert.False(t, reg.Remove("tx-1"))
}

func TestRegistryRemoveRefusedAfterHash(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Create(testRecord("tx-1"))
	reg.Update("tx-1", func(r *Record) {
		r.ExtrinsicHash = "0xabc"
	})

	assert.False(t, reg.Remove("tx-1"))
	_, ok := reg.Get("tx-1")
	assert.True(t, ok)
}

func TestRegistryListInFlight(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	pending := testRecord("tx-pending")
	processing := testRecord("tx-processing")
	processing.Status = StatusProcessing
	done := testRecord("tx-done")
	done.Status = StatusSuccess
	failed := testRecord("tx-failed")
	failed.Status = StatusFail

	for _, rec := range []*Record{pending, processing, done, failed} {
		reg.Create(rec)
	}

	inFlight := reg.ListInFlight()
	ids := make([]string, 0, len(inFlight))
	for _, rec := range inFlight {
		ids = append(ids, rec.ID)
	}
	assert.ElementsMatch(t, []string{"tx-pending", "tx-processing"}, ids)
}

func TestRegistrySnapshotOrdering(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	var sizes []int
	fn := func(snap Snapshot) {
		sizes = append(sizes, len(snap))
	}
	require.NoError(t, reg.Subscribe(fn))

	reg.Create(testRecord("tx-1"))
	reg.Create(testRecord("tx-2"))
	reg.Update("tx-1", func(r *Record) { r.Status = StatusProcessing })
	reg.Remove("tx-2")

	require.NoError(t, reg.Unsubscribe(fn))
	reg.Create(testRecord("tx-3"))

	// One snapshot per mutation, in mutation order, none after
	// unsubscribing.
	assert.Equal(t, []int{1, 2, 2, 1}, sizes)
}
