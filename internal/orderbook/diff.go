package orderbook

import "sort"

// Diff is an ordered, duplicate-free sequence of Orders describing mutations
// to one quote side of a book: an empty-amount entry means "delete this
// level", anything else means "set this level to this amount". A Diff owns
// its order slice exclusively; constructors always copy the input.
type Diff[S Side] struct {
	orders []Order
}

// NewDiff sorts orders by S's comparator and validates that prices are
// pairwise distinct.
func NewDiff[S Side](orders []Order) (Diff[S], error) {
	cp := cloneOrders(orders)
	var s S
	sort.SliceStable(cp, func(i, j int) bool { return s.less(cp[i].price, cp[j].price) })
	return newDiffFromSorted[S](cp)
}

// NewDiffSorted validates that orders is already sorted by S's comparator and
// that prices are pairwise distinct; it does not re-sort.
func NewDiffSorted[S Side](orders []Order) (Diff[S], error) {
	cp := cloneOrders(orders)
	var s S
	if !isSortedBy(cp, s.less) {
		return Diff[S]{}, ErrOrdersNotSortedAccordingToQuoteType
	}
	return newDiffFromSorted[S](cp)
}

// newDiffFromSorted assumes orders is already S-sorted and only checks
// distinctness, which is an O(n) scan against the sorted neighbor.
func newDiffFromSorted[S Side](orders []Order) (Diff[S], error) {
	for i := 1; i < len(orders); i++ {
		if orders[i-1].price == orders[i].price {
			return Diff[S]{}, ErrHasOrderWithNotUniquePrice
		}
	}
	return Diff[S]{orders: orders}, nil
}

// Len returns the number of levels carried by the diff.
func (d Diff[S]) Len() int {
	return len(d.orders)
}

// Orders returns a defensive copy of the diff's levels, in S-sorted order.
func (d Diff[S]) Orders() []Order {
	return cloneOrders(d.orders)
}

func cloneOrders(orders []Order) []Order {
	cp := make([]Order, len(orders))
	copy(cp, orders)
	return cp
}

func isSortedBy(orders []Order, less func(a, b Price) bool) bool {
	for i := 1; i < len(orders); i++ {
		if less(orders[i].price, orders[i-1].price) {
			return false
		}
	}
	return true
}
