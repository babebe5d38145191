package antt

import (
	"runtime"

	"github.com/Pro7ech/antt/gf"
	"github.com/Pro7ech/antt/utils/concurrency"
)

// TransformerConcurrent runs the stage schedule with the 2^(LogN+LogRate-1)
// independent butterflies of each stage partitioned across workers.
// Stages remain strictly sequential: stage i only starts once all of stage
// i+1's outputs are available, with a barrier at each stage boundary.
//
// A TransformerConcurrent must not be used for several transforms at once;
// instantiate one [AdditiveNTT] per concurrent caller instead.
type TransformerConcurrent struct {
	novelBasisTransformerBase
	workers []int
}

// NewTransformerConcurrent returns a [NovelBasisTransformer] executing each
// stage on the given number of workers. If workers < 1, it defaults to
// runtime.GOMAXPROCS(0).
func NewTransformerConcurrent(a *AdditiveNTT, workers int) NovelBasisTransformer {

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ids := make([]int, workers)
	for w := range ids {
		ids[w] = w
	}

	return TransformerConcurrent{
		novelBasisTransformerBase: novelBasisTransformerBase{
			TwiddleTable: a.TwiddleTable,
			Field:        a.field,
			LogN:         a.LogN,
			LogRate:      a.LogRate,
		},
		workers: ids,
	}
}

// Forward writes the forward additive NTT of p1 on p2.
func (t TransformerConcurrent) Forward(p1, p2 []gf.Element) {

	logM := t.LogN + t.LogRate
	m := 1 << logM

	if m < MinimumCodewordLenForConcurrentNTT || len(t.workers) < 2 {
		NTTAdditive(p1, p2, t.Field, t.LogN, t.LogRate, t.TwiddleTable)
		return
	}

	Tile(p1[:1<<t.LogN], p2[:m])

	rm := concurrency.NewRessourceManager(t.workers)

	for i := t.LogN - 1; i >= 0; i-- {

		f, twiddles := t.Field, t.Twiddles[i]

		stage := i
		if err := concurrency.ForEachRegion(rm, m>>1, func(_, b1, b2 int) error {
			nttStageButterflyRange(p2[:m], f, stage, twiddles, b1, b2)
			return nil
		}); err != nil {
			// Sanity check: the stage kernel cannot fail.
			panic(err)
		}
	}
}

// Backward writes the backward additive NTT of p1 on p2.
// Defined for LogRate = 0 only.
func (t TransformerConcurrent) Backward(p1, p2 []gf.Element) {

	n := 1 << t.LogN

	if n < MinimumCodewordLenForConcurrentNTT || len(t.workers) < 2 {
		INTTAdditive(p1, p2, t.Field, t.LogN, t.LogRate, t.TwiddleTable)
		return
	}

	// Sanity check
	if t.LogRate != 0 {
		panic("cannot Backward: the rate-expanded transform is not square")
	}

	copy(p2[:n], p1[:n])

	rm := concurrency.NewRessourceManager(t.workers)

	for i := 0; i < t.LogN; i++ {

		f, twiddles := t.Field, t.Twiddles[i]

		stage := i
		if err := concurrency.ForEachRegion(rm, n>>1, func(_, b1, b2 int) error {
			inttStageButterflyRange(p2[:n], f, stage, twiddles, b1, b2)
			return nil
		}); err != nil {
			// Sanity check: the stage kernel cannot fail.
			panic(err)
		}
	}
}
