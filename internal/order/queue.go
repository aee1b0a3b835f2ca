package order

// Queue holds orders an owner runs one at a time, in arrival order.
type Queue struct {
	orders []Order
}

// Push appends o.
func (q *Queue) Push(o Order) {
	q.orders = append(q.orders, o)
}

// Len returns the number of waiting orders.
func (q *Queue) Len() int { return len(q.orders) }

// RunNext executes the front order unless the owner is busy.
// It reports whether an order ran.
func (q *Queue) RunNext(busy bool) bool {
	if busy || len(q.orders) == 0 {
		return false
	}
	o := q.orders[0]
	q.orders[0] = nil
	q.orders = q.orders[1:]
	o.Execute()
	return true
}

// Clear drops every waiting order and destroys it.
func (q *Queue) Clear() {
	orders := q.orders
	q.orders = nil
	for _, o := range orders {
		o.Destroy()
	}
}
