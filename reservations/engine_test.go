package reservations

import (
	"strings"
	"testing"

	"solstice/apperr"
	"solstice/models"
)

func TestCheckPassLimitsAllowsWithinCap(t *testing.T) {
	existing := map[string]int{models.MerchTypeEventPass1: 1}
	requested := map[string]int{models.MerchTypeEventPass1: 2}

	if err := checkPassLimits(existing, requested); err != nil {
		t.Fatalf("expected cap of %d to allow 1+2, got %v", models.EventPass1Limit, err)
	}
}

func TestCheckPassLimitsRejectsOverCap(t *testing.T) {
	existing := map[string]int{models.MerchTypeEventPass2: 2}
	requested := map[string]int{models.MerchTypeEventPass2: 1}

	err := checkPassLimits(existing, requested)
	if err == nil {
		t.Fatal("expected cap violation")
	}
	if apperr.Status(err) != 400 {
		t.Fatalf("expected validation error, got status %d", apperr.Status(err))
	}
	if !strings.Contains(err.Error(), "already purchased 2") {
		t.Fatalf("message should report held units, got %q", err.Error())
	}
}

func TestCheckPassLimitsIgnoresUnrequestedTypes(t *testing.T) {
	// Holding over the cap from earlier data must not block an order that
	// does not touch that pass type.
	existing := map[string]int{models.MerchTypeEventPass1: 5}
	requested := map[string]int{models.MerchTypeEventPass2: 1}

	if err := checkPassLimits(existing, requested); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestComputeTotal(t *testing.T) {
	items := []models.LineItem{
		{Quantity: 2, UnitPrice: 250},
		{Quantity: 1, UnitPrice: 99.5},
	}
	if got := computeTotal(items); got != 599.5 {
		t.Fatalf("expected 599.5, got %v", got)
	}
	if got := computeTotal(nil); got != 0 {
		t.Fatalf("expected 0 for empty order, got %v", got)
	}
}

func TestContainsSize(t *testing.T) {
	sizes := []string{"S", "M", "L"}
	if !containsSize(sizes, "M") {
		t.Fatal("expected M to be available")
	}
	if containsSize(sizes, "XXL") {
		t.Fatal("did not expect XXL to be available")
	}
}
