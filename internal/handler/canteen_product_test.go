package handler

import "testing"

func TestProductReqValidate(t *testing.T) {
    cases := []struct {
        name string
        req  productReq
        want string
    }{
        {"valid", productReq{Name: "Samosa", Category: "snacks", PriceCents: 1500}, ""},
        {"missing name", productReq{Category: "snacks", PriceCents: 1500}, "name required"},
        {"whitespace name", productReq{Name: "   ", Category: "snacks", PriceCents: 1500}, "name required"},
        {"missing category", productReq{Name: "Samosa", PriceCents: 1500}, "category required"},
        {"zero price", productReq{Name: "Samosa", Category: "snacks"}, "price_cents must be positive"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := tc.req.validate(); got != tc.want {
                t.Fatalf("validate() = %q, want %q", got, tc.want)
            }
        })
    }
}

func TestProductReqToModelDefaultsAvailable(t *testing.T) {
    req := productReq{Name: "Samosa", Category: "snacks", PriceCents: 1500}
    if !req.toModel().Available {
        t.Fatal("new product should default to available")
    }
    off := false
    req.Available = &off
    if req.toModel().Available {
        t.Fatal("explicit available=false should carry through")
    }
}
