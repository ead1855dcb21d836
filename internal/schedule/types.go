package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"student-calendar-assistant/internal/model"
)

// OpKind discriminates calendar mutation operations on the wire.
type OpKind string

const (
	OpCreateRecurring OpKind = "create_recurring"
	OpUpdate          OpKind = "update"
	OpDelete          OpKind = "delete"
)

// MutationOp is one calendar mutation. The set of kinds is closed:
// decoding an unknown "op" value fails.
type MutationOp interface {
	Kind() OpKind
}

// CreateRecurringOp creates a recurring calendar event for one class.
// FirstStart and FirstEnd pin the first occurrence; the RRULE bounds
// the repetition to the semester.
type CreateRecurringOp struct {
	Event      model.ScheduleEvent `json:"event"`
	FirstStart time.Time           `json:"first_start_iso"`
	FirstEnd   time.Time           `json:"first_end_iso"`
	RRule      string              `json:"rrule"`
}

func (CreateRecurringOp) Kind() OpKind { return OpCreateRecurring }

// UpdateOp patches an existing calendar event by its provider ID.
type UpdateOp struct {
	EventID string                 `json:"google_event_id"`
	Patch   map[string]interface{} `json:"patch"`
}

func (UpdateOp) Kind() OpKind { return OpUpdate }

// DeleteOp deletes an existing calendar event by its provider ID.
type DeleteOp struct {
	EventID string `json:"google_event_id"`
}

func (DeleteOp) Kind() OpKind { return OpDelete }

// MutationPlan is an ordered list of calendar mutations with a
// human-readable preview. Plans require explicit confirmation before
// execution unless the caller opts into a dry run.
type MutationPlan struct {
	Operations           []MutationOp `json:"operations"`
	Preview              string       `json:"preview"`
	RequiresConfirmation bool         `json:"requires_confirmation"`
}

// opEnvelope carries the discriminator alongside the op payload.
type opEnvelope struct {
	Op OpKind `json:"op"`
}

// MarshalJSON writes each operation with its "op" discriminator.
func (p MutationPlan) MarshalJSON() ([]byte, error) {
	ops := make([]json.RawMessage, len(p.Operations))
	for i, op := range p.Operations {
		body, err := json.Marshal(op)
		if err != nil {
			return nil, err
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
		fields["op"] = json.RawMessage(fmt.Sprintf("%q", op.Kind()))

		merged, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		ops[i] = merged
	}

	return json.Marshal(struct {
		Operations           []json.RawMessage `json:"operations"`
		Preview              string            `json:"preview"`
		RequiresConfirmation bool              `json:"requires_confirmation"`
	}{
		Operations:           ops,
		Preview:              p.Preview,
		RequiresConfirmation: p.RequiresConfirmation,
	})
}

// UnmarshalJSON dispatches each operation on its "op" discriminator.
func (p *MutationPlan) UnmarshalJSON(data []byte) error {
	var raw struct {
		Operations           []json.RawMessage `json:"operations"`
		Preview              string            `json:"preview"`
		RequiresConfirmation bool              `json:"requires_confirmation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ops := make([]MutationOp, 0, len(raw.Operations))
	for i, body := range raw.Operations {
		var env opEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}

		var op MutationOp
		switch env.Op {
		case OpCreateRecurring:
			var o CreateRecurringOp
			if err := json.Unmarshal(body, &o); err != nil {
				return fmt.Errorf("operation %d: %w", i, err)
			}
			op = o
		case OpUpdate:
			var o UpdateOp
			if err := json.Unmarshal(body, &o); err != nil {
				return fmt.Errorf("operation %d: %w", i, err)
			}
			op = o
		case OpDelete:
			var o DeleteOp
			if err := json.Unmarshal(body, &o); err != nil {
				return fmt.Errorf("operation %d: %w", i, err)
			}
			op = o
		default:
			return fmt.Errorf("operation %d: unknown op kind %q", i, env.Op)
		}
		ops = append(ops, op)
	}

	p.Operations = ops
	p.Preview = raw.Preview
	p.RequiresConfirmation = raw.RequiresConfirmation
	return nil
}

// Clone returns a deep copy of the plan so negotiation never mutates
// the caller's plan in place.
func (p MutationPlan) Clone() MutationPlan {
	out := MutationPlan{
		Preview:              p.Preview,
		RequiresConfirmation: p.RequiresConfirmation,
		Operations:           make([]MutationOp, len(p.Operations)),
	}
	for i, op := range p.Operations {
		switch o := op.(type) {
		case CreateRecurringOp:
			out.Operations[i] = o
		case UpdateOp:
			patch := make(map[string]interface{}, len(o.Patch))
			for k, v := range o.Patch {
				patch[k] = v
			}
			out.Operations[i] = UpdateOp{EventID: o.EventID, Patch: patch}
		case DeleteOp:
			out.Operations[i] = o
		default:
			out.Operations[i] = op
		}
	}
	return out
}

// ConflictType classifies a detected conflict.
type ConflictType string

const (
	ConflictOverlap         ConflictType = "overlap"
	ConflictDuplicate       ConflictType = "duplicate"
	ConflictOutsideSemester ConflictType = "outside_semester"
	ConflictAmbiguous       ConflictType = "ambiguous"
)

// Conflict is one detected problem with a plan.
type Conflict struct {
	Type        ConflictType `json:"type"`
	Summary     string       `json:"summary"`
	Affected    []string     `json:"affected"`
	Suggestions []string     `json:"suggestions"`
}

// ConflictReport aggregates all conflicts found in a plan.
type ConflictReport struct {
	Conflicts []Conflict `json:"conflicts"`
	Blocking  bool       `json:"blocking"`
}

// AlternativeSlot is one candidate time found while resolving a
// conflict. Higher scores are better.
type AlternativeSlot struct {
	Start time.Time `json:"start_iso"`
	End   time.Time `json:"end_iso"`
	Score float64   `json:"score"`
}

// ResolutionOption proposes moving one operation to a new time.
type ResolutionOption struct {
	OperationIndex int       `json:"operation_index"`
	SuggestedStart time.Time `json:"suggested_start_iso"`
	SuggestedEnd   time.Time `json:"suggested_end_iso"`
	Note           string    `json:"note,omitempty"`
}

// NegotiationOutcome is the result of applying conflict resolutions to
// a plan. The updated plan is a new value; the input plan is untouched.
type NegotiationOutcome struct {
	UpdatedPlan         MutationPlan       `json:"updated_plan"`
	AppliedResolutions  []ResolutionOption `json:"applied_resolutions"`
	UnresolvedConflicts []string           `json:"unresolved_conflicts"`
}

// OpStatus is the outcome of executing one operation.
type OpStatus string

const (
	StatusSuccess OpStatus = "success"
	StatusFailed  OpStatus = "failed"
	StatusSkipped OpStatus = "skipped"
)

// ExecutionResult records the outcome of one operation, in plan order.
type ExecutionResult struct {
	OpIndex int      `json:"op_index"`
	OpType  OpKind   `json:"op_type"`
	Status  OpStatus `json:"status"`
	Message string   `json:"message"`
	EventID string   `json:"event_id,omitempty"`
}

// ExecutionReport summarizes a plan execution.
type ExecutionReport struct {
	Preview     string            `json:"preview"`
	TotalOps    int               `json:"total_ops"`
	ExecutedOps int               `json:"executed_ops"`
	FailedOps   int               `json:"failed_ops"`
	Results     []ExecutionResult `json:"results"`
}

// ExecuteOptions controls plan execution.
type ExecuteOptions struct {
	// DryRun skips all remote calls; every operation is reported as
	// skipped.
	DryRun bool
}
