package lifo

import (
	"testing"
)

// TestPushAndPop tests basic push and pop operations
func TestPushAndPop(t *testing.T) {
	stack := Stack[int]{}

	stack.Push(1)
	stack.Push(2)
	stack.Push(3)

	// Pop and check order (LIFO)
	for _, want := range []int{3, 2, 1} {
		val, ok := stack.Pop()
		if !ok || val != want {
			t.Errorf("Expected %d, got %v", want, val)
		}
	}

	// Stack should now be empty
	if _, ok := stack.Pop(); ok {
		t.Errorf("Expected empty stack, but Pop returned a value")
	}
}

// TestLen tests the Len and IsEmpty functions
func TestLen(t *testing.T) {
	stack := Stack[string]{}
	if !stack.IsEmpty() || stack.Len() != 0 {
		t.Errorf("Expected empty stack")
	}

	stack.Push("A")
	stack.Push("B")
	if stack.IsEmpty() || stack.Len() != 2 {
		t.Errorf("Expected stack of length 2, got %d", stack.Len())
	}
}
