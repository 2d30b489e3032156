package chip8

import "errors"

// MaxStackDepth is the maximum number of nested subroutine calls.
const MaxStackDepth = 16

var (
	// ErrStackUnderflow is returned when returning from a subroutine with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrStackOverflow is returned when calling a subroutine with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
)

// Stack stores subroutine return addresses as byte pairs, high byte first.
type Stack struct {
	data []byte
}

// Push stores a return address.
func (s *Stack) Push(address uint16) error {
	if len(s.data) >= MaxStackDepth*2 {
		return ErrStackOverflow
	}
	s.data = append(s.data, byte(address>>8), byte(address))
	return nil
}

// Pop removes and returns the last pushed return address.
func (s *Stack) Pop() (uint16, error) {
	n := len(s.data)
	if n < 2 {
		return 0, ErrStackUnderflow
	}
	low := s.data[n-1]
	high := s.data[n-2]
	s.data = s.data[:n-2]
	return uint16(high)<<8 | uint16(low), nil
}

// Depth returns the number of stored return addresses.
func (s *Stack) Depth() int {
	return len(s.data) / 2
}

func (s *Stack) reset() {
	s.data = s.data[:0]
}
