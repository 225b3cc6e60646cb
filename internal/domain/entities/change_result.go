package entities

import "strings"

// NoChangeMessage is reported when a run applied nothing
const NoChangeMessage = "no change"

// ChangeResult accumulates the outcome of one run
type ChangeResult struct {
	changed  bool
	messages []string
}

// Record marks the run as changed and appends msg to the change log
func (r *ChangeResult) Record(msg string) {
	r.changed = true
	r.messages = append(r.messages, msg)
}

// Changed reports whether any change was recorded
func (r *ChangeResult) Changed() bool {
	return r.changed
}

// Messages returns a copy of the change log
func (r *ChangeResult) Messages() []string {
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Report freezes the result into the final report
func (r *ChangeResult) Report() Report {
	if !r.changed {
		return Report{Changed: false, Msg: NoChangeMessage}
	}
	return Report{Changed: true, Msg: strings.Join(r.messages, " ")}
}

// Report is the structured result of a run
type Report struct {
	Changed bool   `json:"changed"`
	Failed  bool   `json:"failed,omitempty"`
	Msg     string `json:"msg"`
}

// FailedReport builds the report of an aborted run
func FailedReport(msg string) Report {
	return Report{Failed: true, Msg: msg}
}
