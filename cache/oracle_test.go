package cache_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/lrucache/cache"
)

// TestEngine_MatchesSimpleLRU drives the engine and hashicorp's simplelru
// with the same random operations and requires identical results and
// identical LRU-first key order after every step.
//
// simplelru.Add also treats an overwrite as a use, Get promotes, and
// RemoveOldest drops the LRU entry, so the two must agree exactly.
func TestEngine_MatchesSimpleLRU(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{1, 2, 3, 8, 64} {
		t.Run("cap="+strconv.Itoa(capacity), func(t *testing.T) {
			t.Parallel()

			e, err := cache.NewEngine(cache.Options[int, int]{Capacity: capacity})
			require.NoError(t, err)

			var oracleEvicted []int
			oracle, err := simplelru.NewLRU[int, int](capacity, func(_ int, v int) {
				oracleEvicted = append(oracleEvicted, v)
			})
			require.NoError(t, err)

			r := rand.New(rand.NewSource(int64(capacity)))
			keyspace := 3 * capacity

			for step := 0; step < 5_000; step++ {
				k := r.Intn(keyspace)
				switch op := r.Intn(10); {
				case op < 4:
					oracleEvicted = oracleEvicted[:0]
					v, evicted := e.Add(k, step)
					require.Equal(t, oracle.Add(k, step), evicted, "step %d: eviction flag", step)
					if evicted {
						require.Equal(t, oracleEvicted[0], v, "step %d: evicted value", step)
					}
				case op < 7:
					got, ok := e.Use(k)
					want, wantOK := oracle.Get(k)
					require.Equal(t, wantOK, ok, "step %d: Use(%d)", step, k)
					require.Equal(t, want, got, "step %d: Use(%d)", step, k)
				case op < 9:
					require.Equal(t, oracle.Remove(k), e.Remove(k), "step %d: Remove(%d)", step, k)
				default:
					got, ok := e.RemoveHead()
					_, want, wantOK := oracle.RemoveOldest()
					require.Equal(t, wantOK, ok, "step %d: RemoveHead", step)
					require.Equal(t, want, got, "step %d: RemoveHead", step)
				}

				require.NoError(t, e.Validate(), "step %d", step)
				require.Equal(t, oracle.Keys(), e.Keys(), "step %d: key order", step)
			}
		})
	}
}
