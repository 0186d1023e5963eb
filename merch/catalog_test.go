package merch

import (
	"testing"

	"solstice/models"
)

func TestValidateWearableNeedsSizes(t *testing.T) {
	item := models.Merch{
		Name:  "Festival Hoodie",
		Type:  models.MerchTypeWearable,
		Price: 899,
		Stock: 50,
	}
	if msg := validate(&item); msg == "" {
		t.Fatal("wearable without sizes should be rejected")
	}

	item.Sizes = []string{"M", "L"}
	if msg := validate(&item); msg != "" {
		t.Fatalf("unexpected rejection: %s", msg)
	}
}

func TestValidateRejectsUnknownSize(t *testing.T) {
	item := models.Merch{
		Name:  "Festival Hoodie",
		Type:  models.MerchTypeWearable,
		Price: 899,
		Stock: 50,
		Sizes: []string{"M", "GIANT"},
	}
	if msg := validate(&item); msg == "" {
		t.Fatal("unknown size should be rejected")
	}
}

func TestValidateNonWearableRejectsSizes(t *testing.T) {
	item := models.Merch{
		Name:  "Sticker Pack",
		Type:  models.MerchTypeNonWearable,
		Price: 99,
		Stock: 500,
		Sizes: []string{"M"},
	}
	if msg := validate(&item); msg == "" {
		t.Fatal("non-wearable with sizes should be rejected")
	}
}

func TestValidateBasics(t *testing.T) {
	cases := []struct {
		name string
		item models.Merch
	}{
		{"empty name", models.Merch{Type: models.MerchTypeNonWearable, Price: 10, Stock: 1}},
		{"unknown type", models.Merch{Name: "x", Type: "mystery", Price: 10, Stock: 1}},
		{"zero price", models.Merch{Name: "x", Type: models.MerchTypeNonWearable, Stock: 1}},
		{"negative stock", models.Merch{Name: "x", Type: models.MerchTypeNonWearable, Price: 10, Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if msg := validate(&tc.item); msg == "" {
				t.Fatal("expected validation failure")
			}
		})
	}
}

func TestValidateEventPass(t *testing.T) {
	item := models.Merch{
		Name:  "Day One Pass",
		Type:  models.MerchTypeEventPass1,
		Price: 499,
		Stock: 1000,
	}
	if msg := validate(&item); msg != "" {
		t.Fatalf("unexpected rejection: %s", msg)
	}
}
