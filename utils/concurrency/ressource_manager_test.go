package concurrency

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcurrency(t *testing.T) {

	t.Run("NoError", func(t *testing.T) {

		acc := make([]int, 8)

		ressources := make([]bool, 4)

		rm := NewRessourceManager(ressources)

		for i := range acc {
			rm.Run(func(r bool) (err error) {
				acc[i]++
				return
			})
		}

		require.NoError(t, rm.Wait())

		for i := range acc {
			require.Equal(t, acc[i], 1)
		}
	})

	t.Run("WithError", func(t *testing.T) {
		acc := make([]int, 8)

		ressources := make([]bool, 4)

		rm := NewRessourceManager(ressources)

		for i := range acc {
			rm.Run(func(r bool) (err error) {
				acc[i]++
				if i == 2 {
					return fmt.Errorf("something bad happened")
				}

				return
			})
		}

		require.Error(t, rm.Wait())
	})

	t.Run("ForEachRegion", func(t *testing.T) {

		n := 1000

		var covered atomic.Int64

		rm := NewRessourceManager(make([]int, 7))

		require.NoError(t, ForEachRegion(rm, n, func(w, start, end int) error {
			if start >= end {
				return fmt.Errorf("empty region [%d, %d)", start, end)
			}
			covered.Add(int64(end - start))
			return nil
		}))

		require.Equal(t, int64(n), covered.Load())
	})

	t.Run("ForEachRegionFewerItemsThanWorkers", func(t *testing.T) {

		var covered atomic.Int64

		rm := NewRessourceManager(make([]int, 8))

		require.NoError(t, ForEachRegion(rm, 3, func(w, start, end int) error {
			covered.Add(int64(end - start))
			return nil
		}))

		require.Equal(t, int64(3), covered.Load())
	})
}
