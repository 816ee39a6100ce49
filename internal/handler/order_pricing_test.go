package handler

import (
    "math"
    "strings"
    "testing"

    "github.com/rezamb/canteen-ordering/internal/model"
)

func TestDiscountForPercent(t *testing.T) {
    cpn := model.Coupon{DiscountType: model.DiscountPercent, DiscountValue: 10}
    if got := discountFor(cpn, 2000); got != 200 {
        t.Fatalf("10%% of 2000 = %d, want 200", got)
    }
    // Integer division truncates toward zero.
    if got := discountFor(cpn, 99); got != 9 {
        t.Fatalf("10%% of 99 = %d, want 9", got)
    }
}

func TestDiscountForFlat(t *testing.T) {
    cpn := model.Coupon{DiscountType: model.DiscountFlat, DiscountValue: 500}
    if got := discountFor(cpn, 2000); got != 500 {
        t.Fatalf("flat 500 off 2000 = %d, want 500", got)
    }
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
    flat := model.Coupon{DiscountType: model.DiscountFlat, DiscountValue: 5000}
    if got := discountFor(flat, 300); got != 300 {
        t.Fatalf("flat 5000 off 300 = %d, want cap at 300", got)
    }
    full := model.Coupon{DiscountType: model.DiscountPercent, DiscountValue: 100}
    if got := discountFor(full, 300); got != 300 {
        t.Fatalf("100%% of 300 = %d, want 300", got)
    }
}

func TestBuildOrderItems(t *testing.T) {
    lines := []model.CartLine{
        {ProductID: 1, Name: "Samosa", PriceCents: 1500, Available: true, Quantity: 2},
        {ProductID: 2, Name: "Chai", PriceCents: 500, Available: true, Quantity: 1},
    }
    subtotal, items, problem := buildOrderItems(lines)
    if problem != "" {
        t.Fatalf("unexpected problem: %s", problem)
    }
    if subtotal != 3500 {
        t.Fatalf("subtotal = %d, want 3500", subtotal)
    }
    if len(items) != 2 || items[0].Name != "Samosa" || items[1].Quantity != 1 {
        t.Fatalf("unexpected items: %+v", items)
    }
}

func TestBuildOrderItemsRejectsUnavailable(t *testing.T) {
    lines := []model.CartLine{
        {ProductID: 1, Name: "Samosa", PriceCents: 1500, Available: false, Quantity: 2},
    }
    if _, _, problem := buildOrderItems(lines); !strings.Contains(problem, "no longer available") {
        t.Fatalf("problem = %q, want availability rejection", problem)
    }
}

func TestBuildOrderItemsRejectsOverflow(t *testing.T) {
    // 100 * 42_949_673 wraps to 4 in uint32 arithmetic; the builder must
    // refuse instead of charging cents for a fortune.
    lines := []model.CartLine{
        {ProductID: 1, Name: "Chai", PriceCents: 100, Available: true, Quantity: 42_949_673},
    }
    subtotal, items, problem := buildOrderItems(lines)
    if problem != "order total too large" {
        t.Fatalf("problem = %q, want overflow rejection", problem)
    }
    if subtotal != 0 || items != nil {
        t.Fatalf("overflowing cart produced subtotal %d, items %v", subtotal, items)
    }

    // The same guard holds when the wrap happens across lines.
    many := []model.CartLine{
        {ProductID: 1, Name: "A", PriceCents: math.MaxUint32, Available: true, Quantity: 1},
        {ProductID: 2, Name: "B", PriceCents: 1, Available: true, Quantity: 1},
    }
    if _, _, problem := buildOrderItems(many); problem != "order total too large" {
        t.Fatalf("problem = %q, want overflow rejection across lines", problem)
    }
}

func TestDiscountForUnknownType(t *testing.T) {
    cpn := model.Coupon{DiscountType: "mystery", DiscountValue: 50}
    if got := discountFor(cpn, 1000); got != 0 {
        t.Fatalf("unknown discount type yielded %d, want 0", got)
    }
}
