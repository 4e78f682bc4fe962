// Package fibonacci implements the naive, doubly recursive Fibonacci function
// used as the workload of the cross-language benchmark.
//
// The recurrence is f(0) = 1, f(1) = 1, f(k) = f(k-1) + f(k-2). Arithmetic is
// performed on int64 and wraps silently on overflow, exactly like the
// fixed-width implementations the benchmark is compared against.
package fibonacci

// Fib returns the n-th value of the recurrence f(0) = f(1) = 1 using two
// recursive calls per non-base case. Its running time is O(φⁿ); that cost is
// the quantity being measured, so no caching of any kind is allowed here.
//
// Negative indices are treated as base cases.
func Fib(n int) int64 {
	if n < 2 {
		return 1
	}
	return Fib(n-1) + Fib(n-2)
}

// Term returns the i-th term (1-based) of the printed benchmark sequence.
// Term(1) = Term(2) = 1, Term(3) = 2, and Term(i) = Fib(i-1).
func Term(i int) int64 {
	return Fib(i - 1)
}

// CallsFor returns how many invocations of Fib were performed to produce
// value = Fib(n), including the outermost one. With C(0) = C(1) = 1 and
// C(k) = 1 + C(k-1) + C(k-2), the closed form is 2*Fib(n) - 1, so the count
// can be derived without recursing a second time.
//
// The count is exact for n <= MaxExactIndex, where 2*Fib(n) - 1 still fits
// in a uint64.
func CallsFor(value int64) uint64 {
	return 2*uint64(value) - 1
}
