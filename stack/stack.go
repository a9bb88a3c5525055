// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package stack provides a non-thread-safe LIFO stack backed by a singly-linked list.
//
// Every node is owned by exactly one predecessor, or by the Stack for the head node.
// Nodes never leave the package, so a chain can not be shared between two stacks
// unless a Stack value itself is copied, which go vet reports through noCopy.
package stack

// Stack is a non-thread-safe stack. The zero value is an empty stack ready to use.
// A Stack must not be copied after first use.
type Stack[T any] struct {
	_    noCopy
	head *node[T]
	size int
}

type node[T any] struct {
	value T
	next  *node[T]
}

// New creates a stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Size returns the stack size.
func (st *Stack[T]) Size() int {
	return st.size
}

// Empty reports whether the stack holds no element.
func (st *Stack[T]) Empty() bool {
	return st.size == 0
}

// Push pushes an element onto the stack.
func (st *Stack[T]) Push(value T) {
	st.head = &node[T]{
		value: value,
		next:  st.head,
	}
	st.size++
}

// Pop pops an element from the stack.
// It returns false and leaves the stack untouched if the stack is empty.
func (st *Stack[T]) Pop() (T, bool) {
	if st.head == nil {
		var zero T
		return zero, false
	}
	top := st.head
	st.head = top.next
	top.next = nil
	st.size--
	return top.value, true
}

// Peek looks at the top element of the stack.
func (st *Stack[T]) Peek() (T, bool) {
	if st.head == nil {
		var zero T
		return zero, false
	}
	return st.head.value, true
}

// PeekMut returns a pointer to the top element so it can be updated in place,
// or nil if the stack is empty.
// The pointer is only valid until the next Push, Pop or Reset.
func (st *Stack[T]) PeekMut() *T {
	if st.head == nil {
		return nil
	}
	return &st.head.value
}

// Reset releases every element and leaves an empty stack.
// Nodes are unlinked one at a time from the head, so the cost does not
// depend on anything but the number of elements.
func (st *Stack[T]) Reset() {
	cur := st.head
	st.head = nil
	st.size = 0
	for cur != nil {
		next := cur.next
		cur.next = nil
		var zero T
		cur.value = zero
		cur = next
	}
}

// Range calls f for each element from the top down until f returns false.
// f must not modify the stack.
func (st *Stack[T]) Range(f func(value T) bool) {
	for n := st.head; n != nil; n = n.next {
		if !f(n.value) {
			return
		}
	}
}

// Values returns the elements from the top down, or nil if the stack is empty.
func (st *Stack[T]) Values() []T {
	if st.size == 0 {
		return nil
	}
	values := make([]T, 0, st.size)
	st.Range(func(v T) bool {
		values = append(values, v)
		return true
	})
	return values
}

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

// Lock is a no-op used by the go vet copylocks checker.
func (*noCopy) Lock() {}

// Unlock is a no-op used by the go vet copylocks checker.
func (*noCopy) Unlock() {}
