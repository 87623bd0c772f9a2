package check

// Buffer is the ordered, append-only result list of a single run.
type Buffer struct {
	results []Result
	onAdd   func(Result)
}

func NewBuffer(onAdd func(Result)) *Buffer {
	return &Buffer{onAdd: onAdd}
}

func (b *Buffer) Add(results ...Result) {
	for _, r := range results {
		b.results = append(b.results, r)
		if b.onAdd != nil {
			b.onAdd(r)
		}
	}
}

// Results returns a copy so callers cannot rewrite recorded history.
func (b *Buffer) Results() []Result {
	out := make([]Result, len(b.results))
	copy(out, b.results)
	return out
}

func (b *Buffer) Len() int {
	return len(b.results)
}

// Highest returns the worst status recorded so far, PASS when empty.
func (b *Buffer) Highest() Status {
	return Highest(b.results)
}

func Highest(results []Result) Status {
	best := StatusPass
	for _, r := range results {
		if r.Status.Severity() > best.Severity() {
			best = r.Status
		}
	}
	return best
}
