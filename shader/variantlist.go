package shader

// variantNode is a node in the recency-ordered variant list. The node
// is tracked in the program's key index for O(1) reordering and
// removal.
type variantNode struct {
	v    *Variant
	prev *variantNode
	next *variantNode
}

// variantList is a doubly-linked list ordered by recency of selection.
// The head is the most recently selected variant, the tail the least
// recently selected; garbage collection evicts from the tail.
//
// The list is not thread-safe; Program is single-owner.
type variantList struct {
	head *variantNode
	tail *variantNode
	len  int
}

// Len returns the number of variants in the list.
func (l *variantList) Len() int { return l.len }

// PushFront adds a new variant at the front (most recently selected).
// Returns the created node for later reordering.
func (l *variantList) PushFront(v *Variant) *variantNode {
	node := &variantNode{v: v}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.len++
	return node
}

// MoveToFront moves an existing node to the front.
func (l *variantList) MoveToFront(node *variantNode) {
	if node == nil || node == l.head {
		return
	}

	l.unlink(node)

	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// Remove removes a node from the list.
func (l *variantList) Remove(node *variantNode) {
	if node == nil {
		return
	}
	l.unlink(node)
}

// Tail returns the least recently selected node, or nil.
func (l *variantList) Tail() *variantNode { return l.tail }

// unlink detaches a node and decrements the length.
func (l *variantList) unlink(node *variantNode) {
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
	node.prev = nil
	node.next = nil
	l.len--
}
