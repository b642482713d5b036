// Package report holds the run report shared by the materializer and the
// provisioning step runner. Best-effort failures are recorded here
// instead of being silently discarded, so "continue regardless" keeps
// its observability.
package report

// Status is the outcome of one named step
type Status string

const (
	// StatusSuccess means the step completed
	StatusSuccess Status = "success"

	// StatusSkipped means the step did not apply (missing source,
	// failed precondition) and was deliberately not run
	StatusSkipped Status = "skipped"

	// StatusFailed means the step ran and failed; the run continued
	StatusFailed Status = "failed"
)

// StepResult records the outcome of one step
type StepResult struct {
	Name   string `json:"name" yaml:"name"`
	Status Status `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Report is an ordered collection of step results for one run
type Report struct {
	Title string       `json:"title" yaml:"title"`
	Steps []StepResult `json:"steps" yaml:"steps"`
}

// New creates an empty report with the given title
func New(title string) *Report {
	return &Report{Title: title}
}

// Add appends a step result
func (r *Report) Add(result StepResult) {
	r.Steps = append(r.Steps, result)
}

// AddSuccess records a completed step
func (r *Report) AddSuccess(name string) {
	r.Add(StepResult{Name: name, Status: StatusSuccess})
}

// AddSkipped records a step that did not apply
func (r *Report) AddSkipped(name, reason string) {
	r.Add(StepResult{Name: name, Status: StatusSkipped, Reason: reason})
}

// AddFailed records a best-effort failure
func (r *Report) AddFailed(name string, err error) {
	result := StepResult{Name: name, Status: StatusFailed}
	if err != nil {
		result.Reason = err.Error()
	}
	r.Add(result)
}

// HasFailures reports whether any step failed
func (r *Report) HasFailures() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Counts returns the number of successful, skipped and failed steps
func (r *Report) Counts() (succeeded, skipped, failed int) {
	for _, s := range r.Steps {
		switch s.Status {
		case StatusSuccess:
			succeeded++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return
}

// Find returns the first step with the given name, or nil
func (r *Report) Find(name string) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			return &r.Steps[i]
		}
	}
	return nil
}

// Merge appends all steps from other into r
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Steps = append(r.Steps, other.Steps...)
}
