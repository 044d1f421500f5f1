package crawl

// compactThreshold is the number of consumed slots a queue tolerates
// before it shifts its live items down to reuse the backing array.
const compactThreshold = 64

// queue is a FIFO of URLs. It is not safe for concurrent use.
type queue struct {
	items []string
	head  int
}

func (q *queue) len() int { return len(q.items) - q.head }

func (q *queue) push(url string) {
	q.items = append(q.items, url)
}

// pop removes and returns the head of the queue.
func (q *queue) pop() (string, bool) {
	if q.len() == 0 {
		return "", false
	}
	url := q.items[q.head]
	q.items[q.head] = ""
	q.head++

	switch {
	case q.head == len(q.items):
		q.reset()
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return url, true
}

// drainInto moves every URL to the tail of dst, preserving order.
func (q *queue) drainInto(dst *queue) {
	dst.items = append(dst.items, q.items[q.head:]...)
	clear(q.items)
	q.reset()
}

func (q *queue) reset() {
	q.items = q.items[:0]
	q.head = 0
}
