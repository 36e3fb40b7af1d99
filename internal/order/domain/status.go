package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the order lifecycle state, stored and serialized as its ordinal.
// Transitions are unconstrained: any status may be set from any other.
type Status int

const (
	StatusPending Status = iota
	StatusProcessing
	StatusShipped
	StatusDelivered
	StatusCancelled
)

var statusNames = [...]string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"}

func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

func (s Status) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return statusNames[s]
}

// ParseStatus accepts a status name (case-insensitive) or its ordinal.
func ParseStatus(value string) (Status, error) {
	trimmed := strings.TrimSpace(value)
	for i, name := range statusNames {
		if strings.EqualFold(name, trimmed) {
			return Status(i), nil
		}
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		s := Status(n)
		if s.Valid() {
			return s, nil
		}
	}
	return StatusPending, fmt.Errorf("unknown order status %q", value)
}
