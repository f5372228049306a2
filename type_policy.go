package powermix

import "fmt"

// AllocationPolicy decides what happens to a row whose plant count exceeds
// what its remaining budget allows.
type AllocationPolicy int

const (
	// ReportOverAllocation keeps the count as entered and flags the row.
	ReportOverAllocation AllocationPolicy = iota
	// ClampOverAllocation lowers the count to the row's allowed maximum.
	ClampOverAllocation
)

func (p AllocationPolicy) String() string {
	switch p {
	case ReportOverAllocation:
		return "report"
	case ClampOverAllocation:
		return "clamp"
	default:
		return "unknown"
	}
}

// ParseAllocationPolicy parses a string into an AllocationPolicy.
func ParseAllocationPolicy(s string) (AllocationPolicy, error) {
	switch s {
	case "report", "":
		return ReportOverAllocation, nil
	case "clamp":
		return ClampOverAllocation, nil
	default:
		return 0, fmt.Errorf("unknown allocation policy: %q", s)
	}
}

// SelectionPolicy decides whether a row keeps offering its current source
// once that source is no longer affordable.
type SelectionPolicy int

const (
	// KeepSelection offers the current source as long as some budget remains.
	KeepSelection SelectionPolicy = iota
	// StrictSelection only offers affordable sources.
	StrictSelection
)

func (p SelectionPolicy) String() string {
	switch p {
	case KeepSelection:
		return "keep"
	case StrictSelection:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseSelectionPolicy parses a string into a SelectionPolicy.
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch s {
	case "keep", "":
		return KeepSelection, nil
	case "strict":
		return StrictSelection, nil
	default:
		return 0, fmt.Errorf("unknown selection policy: %q", s)
	}
}

// Policy groups the two rules a front end may want to tune. The zero value
// reports over-allocations and keeps current selections.
type Policy struct {
	Allocation AllocationPolicy
	Selection  SelectionPolicy
}

func (p Policy) String() string {
	return fmt.Sprintf("allocation=%s selection=%s", p.Allocation, p.Selection)
}
