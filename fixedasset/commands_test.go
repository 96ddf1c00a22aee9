package fixedasset_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/asset-register/fixedasset"
)

func TestRevalued_CopyOnWrite(t *testing.T) {
	// GIVEN: A component with no revaluations
	// WHEN: A revaluation is applied
	// THEN: The original value is untouched; the copy carries the event

	original := machine55k()
	updated := original.Revalued(date(2023, time.June, 1), dec(60000))

	if len(original.Revaluations) != 0 {
		t.Error("original component must not be mutated")
	}
	if len(updated.Revaluations) != 1 {
		t.Fatalf("expected one revaluation on the copy, got %d", len(updated.Revaluations))
	}
}

func TestRevalued_KeepsEventsOrdered(t *testing.T) {
	comp := machine55k().
		Revalued(date(2023, time.September, 1), dec(58000)).
		Revalued(date(2023, time.March, 1), dec(60000))

	if !comp.Revaluations[0].EffectiveAt.Before(comp.Revaluations[1].EffectiveAt) {
		t.Error("revaluation events must stay ordered by effective date")
	}
}

func TestImpaired_CumulativeAndFlooredAtZero(t *testing.T) {
	comp := machine55k().Impaired(dec(9000)).Impaired(dec(3000))
	if !comp.ImpairmentLoss.Equal(dec(12000)) {
		t.Errorf("expected cumulative impairment 12000, got %s", comp.ImpairmentLoss)
	}
	if comp.Status != fixedasset.StatusImpaired {
		t.Errorf("expected impaired status, got %s", comp.Status)
	}

	reversed := comp.Impaired(dec(-20000))
	if !reversed.ImpairmentLoss.Equal(decimal.Zero) {
		t.Errorf("cumulative impairment must floor at zero, got %s", reversed.ImpairmentLoss)
	}
}

func TestDisposed_TerminalAndCopyOnWrite(t *testing.T) {
	original := machine55k()
	sold := original.Disposed(date(2023, time.July, 1), dec(40000))

	if original.DisposalDate != nil || original.Status != fixedasset.StatusActive {
		t.Error("original component must not be mutated")
	}
	if sold.Status != fixedasset.StatusDisposed || sold.DisposalDate == nil {
		t.Fatalf("expected disposed copy, got %+v", sold)
	}
	if !sold.DisposalProceeds.Equal(dec(40000)) {
		t.Errorf("expected proceeds 40000, got %s", sold.DisposalProceeds)
	}
}

func TestScrapped_NoProceeds(t *testing.T) {
	scrapped := machine55k().Scrapped(date(2023, time.July, 1))
	if scrapped.Status != fixedasset.StatusScrapped {
		t.Errorf("expected scrapped status, got %s", scrapped.Status)
	}
	if !scrapped.DisposalProceeds.IsZero() {
		t.Errorf("scrapping has no proceeds, got %s", scrapped.DisposalProceeds)
	}
}
