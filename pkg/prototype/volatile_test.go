package prototype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// volatileFixture returns a prototype whose destructor records the
// order instances are reclaimed in.
func volatileFixture(t *testing.T) (*Prototype, *[]any) {
	t.Helper()
	var reclaimed []any
	p, err := Build("result", Decl{
		New: func(p *Prototype, inst *Instance, args ...any) {
			inst.Set("id", args[0])
		},
		Del: func(inst *Instance) {
			id, _ := inst.Get("id")
			reclaimed = append(reclaimed, id)
		},
	})
	require.NoError(t, err)
	return p, &reclaimed
}

func TestDrainAllEmptiesQueue(t *testing.T) {
	p, reclaimed := volatileFixture(t)
	q := NewVolatileQueue()

	for i := 0; i < 5; i++ {
		q.Mark(p.New(i))
	}
	require.Equal(t, 5, q.Len())

	n, err := q.DrainAll()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 0, q.Len())

	// oldest first, through the normal deletion path
	assert.Equal(t, []any{0, 1, 2, 3, 4}, *reclaimed)
	assert.Equal(t, 5, p.Pool().Len())
}

func TestDrainOneBoundsWork(t *testing.T) {
	p, reclaimed := volatileFixture(t)
	q := NewVolatileQueue()

	for i := 0; i < 4; i++ {
		q.Mark(p.New(i))
	}

	// exactly one entry per call, oldest first
	for i := 0; i < 4; i++ {
		ok, err := q.DrainOne()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3-i, q.Len())
		assert.Len(t, *reclaimed, i+1)
	}

	ok, err := q.DrainOne()
	require.NoError(t, err)
	assert.False(t, ok, "empty queue is an expected outcome")
}

func TestPopIfTop(t *testing.T) {
	p, reclaimed := volatileFixture(t)
	q := NewVolatileQueue()

	a := p.New("a")
	b := p.New("b")
	q.Mark(a)
	q.Mark(b)

	// not the most recently marked: queue unchanged
	ok, err := q.PopIfTop(a)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, q.Len())
	assert.Empty(t, *reclaimed)

	// the tail entry: removed and reclaimed
	ok, err = q.PopIfTop(b)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, []any{"b"}, *reclaimed)
	assert.Equal(t, StateRecycled, b.State())
}

func TestUnmarkRemovesWithoutReclaiming(t *testing.T) {
	p, reclaimed := volatileFixture(t)
	q := NewVolatileQueue()

	a := p.New("a")
	b := p.New("b")
	q.Mark(a)
	q.Mark(b)

	q.Unmark(a)
	assert.Equal(t, 1, q.Len())
	assert.Empty(t, *reclaimed)
	assert.Equal(t, StateLive, a.State(), "unmark must not delete")

	// not found is a no-op
	q.Unmark(a)
	assert.Equal(t, 1, q.Len())

	// an unmarked instance can be marked again later
	q.Mark(a)
	assert.Equal(t, 2, q.Len())
}

func TestMarkIsIdempotent(t *testing.T) {
	p, _ := volatileFixture(t)
	q := NewVolatileQueue()

	inst := p.New("x")
	q.Mark(inst)
	q.Mark(inst)
	q.Mark(nil)
	assert.Equal(t, 1, q.Len())
}

func TestMarkedInstanceStaysLive(t *testing.T) {
	p, _ := volatileFixture(t)
	q := NewVolatileQueue()

	inst := p.New("x")
	q.Mark(inst)

	// the queue holds a non-owning reference; the caller keeps using
	// the instance until the drain
	assert.Equal(t, StateLive, inst.State())
	inst.Set("extra", 1)
	v, ok := inst.Get("extra")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestDrainSurfacesOutOfBandDeletion(t *testing.T) {
	p, _ := volatileFixture(t)
	q := NewVolatileQueue()

	inst := p.New("x")
	q.Mark(inst)

	// deleting behind the queue's back is caller error; the drain
	// must fail loudly instead of pushing the storage twice
	require.NoError(t, p.Del(inst))
	_, err := q.DrainAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotLive)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 1, p.Pool().Len())
}

func TestDrainInterleavesWithMarking(t *testing.T) {
	p, reclaimed := volatileFixture(t)
	q := NewVolatileQueue()

	q.Mark(p.New(1))
	q.Mark(p.New(2))

	ok, err := q.DrainOne()
	require.NoError(t, err)
	require.True(t, ok)

	// marking between slices reuses the just-reclaimed storage
	q.Mark(p.New(3))
	n, err := q.DrainAll()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []any{1, 2, 3}, *reclaimed)
}
