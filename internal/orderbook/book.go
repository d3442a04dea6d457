package orderbook

import "sort"

// Depth is the summary/per-exchange book depth cap (N in the spec).
const Depth = 10

// Book is a Diff with two extra invariants: no empty orders, and length at
// most Depth. A Book therefore satisfies every Diff invariant too - it just
// can't be constructed through the Diff constructors, since it additionally
// validates emptiness and truncates.
type Book[S Side] struct {
	orders []Order
}

// NewBook ranks orders by S's order, keeps the best Depth distinct levels,
// and validates them. For inputs no longer than Depth this reduces to "sort
// all, validate, truncate is a no-op".
func NewBook[S Side](orders []Order) (Book[S], error) {
	if len(orders) == 0 {
		return Book[S]{}, nil
	}
	cp := cloneOrders(orders)
	var s S
	k := min(len(cp), Depth) - 1
	selectNth(cp, k, s.less)
	top := cp[:k+1]
	sort.SliceStable(top, func(i, j int) bool { return s.less(top[i].price, top[j].price) })
	return newBookFromRanked[S](top)
}

// NewBookSorted validates that orders is already S-sorted within its first
// Depth elements, truncates to Depth, and validates.
func NewBookSorted[S Side](orders []Order) (Book[S], error) {
	cp := cloneOrders(orders)
	limit := min(len(cp), Depth)
	var s S
	if !isSortedBy(cp[:limit], s.less) {
		return Book[S]{}, ErrOrdersNotSortedAccordingToQuoteType
	}
	return newBookFromRanked[S](cp[:limit])
}

// newBookFromRanked validates an already depth-limited, S-ordered slice:
// pairwise distinct prices, and no empty amount among the kept levels.
// Checking only the kept prefix (not the whole original input) is
// deliberate - see spec.md 4.3: this is also how a diff fed in where a
// snapshot was expected gets caught as HasOrderWithEmptyAmount.
func newBookFromRanked[S Side](orders []Order) (Book[S], error) {
	if len(orders) == 0 {
		return Book[S]{}, nil
	}
	hasEmpty := orders[0].IsEmpty()
	unique := true
	for i := 1; i < len(orders); i++ {
		if orders[i].price == orders[i-1].price {
			unique = false
		}
		if orders[i].IsEmpty() {
			hasEmpty = true
		}
	}
	if hasEmpty {
		return Book[S]{}, ErrHasOrderWithEmptyAmount
	}
	if !unique {
		return Book[S]{}, ErrHasOrderWithNotUniquePrice
	}
	return Book[S]{orders: orders}, nil
}

// Len returns the number of levels currently held, at most Depth.
func (b Book[S]) Len() int {
	return len(b.orders)
}

// Orders returns a defensive copy of the book's levels, in S-sorted order.
func (b Book[S]) Orders() []Order {
	return cloneOrders(b.orders)
}

// Diff views the book as a Diff - every Book is a valid Diff.
func (b Book[S]) Diff() Diff[S] {
	return Diff[S]{orders: cloneOrders(b.orders)}
}

// Update folds diff into the book in one linear pass over both (already
// S-sorted, duplicate-free) sequences and returns a fresh Book: at equal
// price the diff wins, a lone book level survives, a lone diff level is
// inserted, and an empty-amount diff level deletes. The result is
// post-filtered for empties and capped at Depth. This never fails - both
// inputs are already validated, so the merge is total.
func (b Book[S]) Update(d Diff[S]) Book[S] {
	var s S
	out := make([]Order, 0, len(b.orders)+len(d.orders))

	i, j := 0, 0
	for i < len(b.orders) && j < len(d.orders) {
		bookHead, diffHead := b.orders[i], d.orders[j]
		switch {
		case bookHead.price == diffHead.price:
			out = append(out, diffHead)
			i++
			j++
		case s.less(bookHead.price, diffHead.price):
			out = append(out, bookHead)
			i++
		default:
			out = append(out, diffHead)
			j++
		}
	}
	out = append(out, b.orders[i:]...)
	out = append(out, d.orders[j:]...)

	kept := out[:0]
	for _, o := range out {
		if !o.IsEmpty() {
			kept = append(kept, o)
		}
	}
	if len(kept) > Depth {
		kept = kept[:Depth]
	}
	return Book[S]{orders: kept}
}
