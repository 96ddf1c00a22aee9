package fixedasset

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// UPDATE COMMANDS - Copy-on-write component mutations
// =============================================================================
// The evaluators require immutable inputs, so the editing layer mirrors
// that: every update returns a new component value and leaves the receiver
// untouched. Corrections are data edits performed by the caller, not
// domain events.

// Revalued returns a copy of the component with the revaluation event
// appended, keeping the event list ordered by effective date.
func (c AssetComponent) Revalued(at Date, fairValue decimal.Decimal) AssetComponent {
	events := make([]RevaluationEvent, len(c.Revaluations), len(c.Revaluations)+1)
	copy(events, c.Revaluations)
	events = append(events, RevaluationEvent{EffectiveAt: at, FairValue: fairValue})
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EffectiveAt.Before(events[j].EffectiveAt)
	})
	c.Revaluations = events
	return c
}

// Impaired returns a copy with the impairment loss added to the cumulative
// total and the status marked impaired. Negative amounts reverse prior
// impairments but never push the cumulative loss below zero.
func (c AssetComponent) Impaired(loss decimal.Decimal) AssetComponent {
	c.Revaluations = cloneEvents(c.Revaluations)
	total := c.ImpairmentLoss.Add(loss)
	if total.IsNegative() {
		total = decimal.Zero
	}
	c.ImpairmentLoss = total
	if !c.Status.OffBooks() {
		c.Status = StatusImpaired
	}
	return c
}

// Disposed returns a copy marked as disposed (sold) on the given date with
// the given proceeds. Disposal is terminal.
func (c AssetComponent) Disposed(at Date, proceeds decimal.Decimal) AssetComponent {
	return c.removed(StatusDisposed, at, proceeds)
}

// Scrapped returns a copy written off on the given date with no proceeds.
func (c AssetComponent) Scrapped(at Date) AssetComponent {
	return c.removed(StatusScrapped, at, decimal.Zero)
}

func (c AssetComponent) removed(status ComponentStatus, at Date, proceeds decimal.Decimal) AssetComponent {
	c.Revaluations = cloneEvents(c.Revaluations)
	c.Status = status
	d := at
	c.DisposalDate = &d
	c.DisposalProceeds = proceeds
	return c
}

func cloneEvents(events []RevaluationEvent) []RevaluationEvent {
	if events == nil {
		return nil
	}
	out := make([]RevaluationEvent, len(events))
	copy(out, events)
	return out
}
