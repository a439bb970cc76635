package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Bounded working memory for building calculation records.
 *
 * Description:	The arena is a fixed size slab with a bump pointer.  The
 *		runner takes a mark before each case and releases back to
 *		it once the results have been compared, so the arena only
 *		ever holds one case at a time.
 *
 *		Running out is not a recoverable error.  The fault policy
 *		is called and is expected not to return.  The default
 *		policy logs at fatal level, which exits the process.
 *
 *---------------------------------------------------------------*/

import "fmt"

// Capacity of the working memory arena, in bytes.
const ARENA_SIZE = 2048

// FaultPolicy is called when an allocation cannot be satisfied.
// It must not return.
type FaultPolicy func(requested int, available int)

func HaltOnExhaustion(requested int, available int) {
	logger.Fatal("working memory arena exhausted", "requested", requested, "available", available)
}

type Arena struct {
	buf   []byte
	used  int
	fault FaultPolicy
}

func NewArena(capacity int, fault FaultPolicy) *Arena {
	if fault == nil {
		fault = HaltOnExhaustion
	}

	return &Arena{
		buf:   make([]byte, capacity),
		fault: fault,
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	Arena.Alloc
 *
 * Purpose:	Take n zeroed bytes from the arena.
 *
 * Returns:	Slice with len and cap of exactly n, so appends beyond
 *		it can't silently spill into the next allocation.
 *
 *--------------------------------------------------------------------*/

func (a *Arena) Alloc(n int) []byte {
	if n < 0 || n > len(a.buf)-a.used {
		a.fault(n, len(a.buf)-a.used)

		// A policy that returns leaves us with nothing sensible to hand back.
		panic(fmt.Sprintf("arena fault policy returned after exhaustion (requested %d)", n))
	}

	var p = a.buf[a.used : a.used+n : a.used+n]
	clear(p)
	a.used += n

	return p
}

// Mark returns the current fill level, for a later Release.
func (a *Arena) Mark() int {
	return a.used
}

// Release frees everything allocated since mark.
func (a *Arena) Release(mark int) {
	if mark < 0 || mark > a.used {
		panic(fmt.Sprintf("arena release to %d outside 0..%d", mark, a.used))
	}

	a.used = mark
}

func (a *Arena) Used() int {
	return a.used
}

func (a *Arena) Capacity() int {
	return len(a.buf)
}
