// Package dlist implements the intrusive doubly-linked list shared by the
// LRU, LFU, and ARC engines. It generalizes capacitor/pkg/cache/memory's
// lruList[K] (which only ever threads bare keys) to an arbitrary payload,
// since LFU's frequency buckets and ARC's four lists all need the same
// splice/erase/push-front/pop-back primitives but carry different things.
//
// A Node's address never changes once allocated, so a *Node[T] is a stable
// locator: an index can hold onto one across any number of Remove/MoveToFront
// calls on other nodes without it being invalidated.
package dlist

// Node is one element of a List. The zero value is not useful; obtain one
// from PushFront.
type Node[T any] struct {
	prev, next *Node[T]
	owner      *List[T]
	Value      T
}

// List is a doubly-linked sequence of nodes. Front is the head, Back is the
// tail; which end represents "most recent" is a convention each engine
// assigns, not something List itself knows about.
type List[T any] struct {
	head, tail *Node[T]
	n          int
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// PushFront inserts a new node carrying v at the head and returns it.
func (l *List[T]) PushFront(v T) *Node[T] {
	node := &Node[T]{Value: v, owner: l}
	if l.head == nil {
		l.head, l.tail = node, node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.n++
	return node
}

// Remove unlinks node from the list. It is a no-op if node is nil or already
// removed from this list.
func (l *List[T]) Remove(node *Node[T]) {
	if node == nil || node.owner != l {
		return
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev, node.next, node.owner = nil, nil, nil
	l.n--
}

// MoveToFront splices an already-linked node to the head without
// reallocating it, preserving its identity as a locator.
func (l *List[T]) MoveToFront(node *Node[T]) {
	if node == nil || node == l.head || node.owner != l {
		return
	}
	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
}

// Front returns the head node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	return l.head
}

// Back returns the tail node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	return l.tail
}

// Len reports the number of nodes currently linked.
func (l *List[T]) Len() int {
	return l.n
}

// PopBack removes and returns the tail node, or nil if the list is empty.
func (l *List[T]) PopBack() *Node[T] {
	node := l.tail
	l.Remove(node)
	return node
}

// MoveToFrontOther splices node out of its current list (which must be src)
// and pushes a node carrying the same value onto the front of dst,
// returning the new node. This is the move a key makes when ARC changes
// its list tag (e.g. T1 -> T2) or LFU changes its frequency bucket; those
// engines do the Remove and PushFront inline rather than calling it.
func MoveToFrontOther[T any](src *List[T], node *Node[T], dst *List[T]) *Node[T] {
	v := node.Value
	src.Remove(node)
	return dst.PushFront(v)
}
