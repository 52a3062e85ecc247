package structure

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue_MaxModeStableOrdering(t *testing.T) {
	q, err := NewPriorityQueue(8, ModeMax)
	require.NoError(t, err)

	// The two 9s are distinguishable by ID: the earlier-inserted one
	// must stay ahead of the later one (stable tie-break).
	ids := map[string]int{}
	for i, v := range []int{5, 9, 3, 9} {
		e := elem(v)
		e.ID = fmt.Sprintf("ins-%d", i)
		ids[e.ID] = i
		_, err := q.Insert(e)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{9, 9, 5, 3}, values(q))

	head, _, err := q.Remove()
	require.NoError(t, err)
	assert.Equal(t, 9, head.Value)
	assert.Equal(t, "ins-1", head.ID, "first-inserted 9 is removed first")

	for _, want := range []int{9, 5, 3} {
		e, _, err := q.Remove()
		require.NoError(t, err)
		assert.Equal(t, want, e.Value)
	}
	assert.True(t, q.IsEmpty())
}

func TestPriorityQueue_MinMode(t *testing.T) {
	q, err := NewPriorityQueue(8, ModeMin)
	require.NoError(t, err)

	for _, v := range []int{5, 9, 3, 9} {
		_, err := q.Insert(elem(v))
		require.NoError(t, err)
	}
	assert.Equal(t, []int{3, 5, 9, 9}, values(q))

	e, _, err := q.Remove()
	require.NoError(t, err)
	assert.Equal(t, 3, e.Value, "min mode removes the smallest value first")
}

func TestPriorityQueue_ComparisonTrace(t *testing.T) {
	q, err := NewPriorityQueue(8, ModeMax)
	require.NoError(t, err)

	for _, v := range []int{9, 5, 3} {
		_, err := q.Insert(elem(v))
		require.NoError(t, err)
	}

	// Inserting 7 scans 9 (no), 5 (yes) and stops - exactly two
	// comparisons, each visible in the trace.
	tr, err := q.Insert(elem(7))
	require.NoError(t, err)
	var compares []string
	for _, s := range tr.Steps {
		if s.Phase == PhaseCompare {
			compares = append(compares, s.Detail)
		}
	}
	require.Len(t, compares, 2)
	assert.Equal(t, "7 > 9 at index 0? no", compares[0])
	assert.Equal(t, "7 > 5 at index 1? yes", compares[1])
	assert.Equal(t, "INSERT(7) -> index 1", tr.Summary)
	assert.Equal(t, []int{9, 7, 5, 3}, values(q))
}

func TestPriorityQueue_InsertAtEndWhenNothingOutranked(t *testing.T) {
	q, err := NewPriorityQueue(4, ModeMax)
	require.NoError(t, err)

	for _, v := range []int{9, 5} {
		_, err := q.Insert(elem(v))
		require.NoError(t, err)
	}
	tr, err := q.Insert(elem(5))
	require.NoError(t, err)
	assert.Equal(t, "INSERT(5) -> index 2", tr.Summary, "equal value lands after the existing one")
}

func TestPriorityQueue_OverflowUnderflow(t *testing.T) {
	q, err := NewPriorityQueue(4, ModeMax)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := q.Insert(elem(i))
		require.NoError(t, err)
	}
	_, err = q.Insert(elem(99))
	assert.True(t, IsOverflow(err))
	assert.Equal(t, 4, q.Len())

	q.Reset()
	_, _, err = q.Remove()
	assert.True(t, IsUnderflow(err))
}

func TestPriorityQueue_FillSorts(t *testing.T) {
	q, err := NewPriorityQueue(8, ModeMax)
	require.NoError(t, err)

	require.NoError(t, q.Fill([]Element{elem(3), elem(9), elem(5)}, 0))
	assert.Equal(t, []int{9, 5, 3}, values(q))

	qmin, err := NewPriorityQueue(8, ModeMin)
	require.NoError(t, err)
	require.NoError(t, qmin.Fill([]Element{elem(3), elem(9), elem(5)}, 0))
	assert.Equal(t, []int{3, 5, 9}, values(qmin))
}
