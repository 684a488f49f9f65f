package scrape

// Query carries the caller-supplied search filters. Which fields a
// given court honors, and under which parameter names, is decided by
// that court's Strategy.
type Query struct {
	// free text matched against the decision body
	Text string
	// free text matched against the decision summary
	Summary string
	// a specific CNJ process number
	ProcessId string

	Classes  []string
	Subjects []string
	Units    []string

	// dates in the dd/mm/yyyy shape the courts expect
	DateStart string
	DateEnd   string

	// keeps heavy nested collections (movements, full documents)
	// in extracted records
	Verbose bool
}

// PageRange is a 1-based inclusive page interval.
type PageRange struct {
	Start int
	End   int
}

// Clamp bounds the range so it never runs past the last real page.
// The lower bound is respected even if it starts beyond page 1.
func (r PageRange) Clamp(lastPage int) PageRange {
	out := r
	if out.Start < 1 {
		out.Start = 1
	}
	if out.End > lastPage {
		out.End = lastPage
	}
	return out
}

func (r PageRange) Empty() bool {
	return r.End < r.Start
}
