package parallel

import "sync"

// chunksPerWorker oversubscribes the queue so an idle worker can pick
// up slack from a slow one instead of waiting at the join barrier.
const chunksPerWorker = 4

// Ranges splits [0, n) into at most chunks contiguous [start, end)
// subranges of near-equal size. The partition depends only on n and
// chunks, never on scheduling, which keeps chunked reductions
// deterministic for a given pool size.
func Ranges(n, chunks int) [][2]int {
	if n <= 0 {
		return nil
	}
	if chunks < 1 {
		chunks = 1
	}
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks
	rs := make([][2]int, 0, chunks)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		rs = append(rs, [2]int{start, end})
	}
	return rs
}

// For runs fn over chunked subranges of [0, n) on the pool and blocks
// until every chunk completes. Chunks never overlap, so fn may write
// freely inside its range.
func (p *Pool) For(n int, fn func(start, end int)) {
	rs := Ranges(n, p.workers*chunksPerWorker)
	if len(rs) <= 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(rs))
	for _, r := range rs {
		start, end := r[0], r[1]
		p.Submit(func() {
			defer wg.Done()
			fn(start, end)
		})
	}
	wg.Wait()
}

// MapReduce runs fn over chunked subranges, collects one partial result
// per chunk, and folds the partials in chunk order. The fold order is
// fixed, so the result depends only on the partition, not on which
// worker finished first.
func (p *Pool) MapReduce(n int, fn func(start, end int) float64) float64 {
	rs := Ranges(n, p.workers*chunksPerWorker)
	if len(rs) == 0 {
		return 0
	}
	if len(rs) == 1 {
		return fn(0, n)
	}

	partials := make([]float64, len(rs))
	var wg sync.WaitGroup
	wg.Add(len(rs))
	for ci, r := range rs {
		ci, start, end := ci, r[0], r[1]
		p.Submit(func() {
			defer wg.Done()
			partials[ci] = fn(start, end)
		})
	}
	wg.Wait()

	total := 0.0
	for _, v := range partials {
		total += v
	}
	return total
}
