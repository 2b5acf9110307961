package domain

import "fmt"

// TicketPriority enumerates SLA urgency, ordered by weight.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

var priorityWeights = map[TicketPriority]int{
	TicketPriorityLow:      1,
	TicketPriorityMedium:   2,
	TicketPriorityHigh:     3,
	TicketPriorityCritical: 4,
}

var priorityLabels = map[TicketPriority]string{
	TicketPriorityLow:      "Low",
	TicketPriorityMedium:   "Medium",
	TicketPriorityHigh:     "High",
	TicketPriorityCritical: "Critical",
}

// ParseTicketPriority validates a raw priority value.
func ParseTicketPriority(value string) (TicketPriority, error) {
	priority := TicketPriority(value)
	if _, ok := priorityWeights[priority]; !ok {
		return "", fmt.Errorf("invalid ticket priority %q", value)
	}
	return priority, nil
}

// TicketPriorityValues returns all valid priority values.
func TicketPriorityValues() []TicketPriority {
	return []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical}
}

func (p TicketPriority) String() string {
	return string(p)
}

// IsValid reports whether the priority is a known variant.
func (p TicketPriority) IsValid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// Weight returns the numeric ordering value, higher means more urgent.
func (p TicketPriority) Weight() int {
	return priorityWeights[p]
}

// Label returns the human-readable form.
func (p TicketPriority) Label() string {
	return priorityLabels[p]
}

// IsHigherThan compares two priorities by weight. Equal weight is not higher.
func (p TicketPriority) IsHigherThan(other TicketPriority) bool {
	return p.Weight() > other.Weight()
}
