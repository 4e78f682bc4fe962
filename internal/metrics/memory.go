package metrics

import "runtime"

// sampleMemory reads runtime memory statistics into the heap gauges.
// Reading MemStats stops the world, so it only runs after the timed loop.
func (b *Benchmark) sampleMemory() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	b.heapAlloc.Set(float64(m.HeapAlloc))
	b.heapObjects.Set(float64(m.HeapObjects))
	b.gcCycles.Set(float64(m.NumGC))
}
