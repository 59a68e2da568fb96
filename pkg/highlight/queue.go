package highlight

import "github.com/yaklabco/searchlight/pkg/token"

// tokenQueue is a FIFO of tokens backed by a reusable slice.
type tokenQueue struct {
	items []token.Token
	head  int
}

func (q *tokenQueue) len() int {
	return len(q.items) - q.head
}

func (q *tokenQueue) push(tokens ...token.Token) {
	q.items = append(q.items, tokens...)
}

func (q *tokenQueue) front() token.Token {
	return q.items[q.head]
}

// replaceFront swaps the head for tok, used to keep the unmatched tail of a
// split token at the head of the queue.
func (q *tokenQueue) replaceFront(tok token.Token) {
	q.items[q.head] = tok
}

func (q *tokenQueue) pop() token.Token {
	tok := q.items[q.head]
	q.items[q.head] = token.Token{}
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > cap(q.items)/2:
		size := len(q.items)
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:size])
		q.items = q.items[:n]
		q.head = 0
	}

	return tok
}

func (q *tokenQueue) reset() {
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}
