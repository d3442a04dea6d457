package orderbook

// selectNth reorders orders in place (using less as the S-comparator over
// price) so that orders[k] holds the value that would be there in fully
// sorted order, orders[:k] are <= it, and orders[k+1:] are >= it. This is a
// textbook Lomuto-partition quickselect: average O(n), same idea as the
// partial selection the spec calls for before the final sort-and-truncate.
func selectNth(orders []Order, k int, less func(a, b Price) bool) {
	lo, hi := 0, len(orders)-1
	for lo < hi {
		p := partition(orders, lo, hi, less)
		switch {
		case p == k:
			return
		case p < k:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

func partition(orders []Order, lo, hi int, less func(a, b Price) bool) int {
	mid := lo + (hi-lo)/2
	orders[mid], orders[hi] = orders[hi], orders[mid]
	pivot := orders[hi].price

	i := lo
	for j := lo; j < hi; j++ {
		if less(orders[j].price, pivot) {
			orders[i], orders[j] = orders[j], orders[i]
			i++
		}
	}
	orders[i], orders[hi] = orders[hi], orders[i]
	return i
}
