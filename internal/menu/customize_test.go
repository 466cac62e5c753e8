package menu

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func wingsDef() Definition {
	return Definition{
		ItemID:    "wings-1",
		Name:      "Buffalo Wings",
		BasePrice: dec(249),
		Variations: Variations{Flat: []Option{
			{Name: "6pc", Price: dec(249)},
			{Name: "8pc", Price: dec(299)},
			{Name: "10pc", Price: dec(349)},
		}},
		Flavors: []string{"Original", "Spicy Buffalo"},
	}
}

func TestResolve_FlatVariationReplacesBasePrice(t *testing.T) {
	c, err := Resolve(wingsDef(), Selection{Variation: "8pc", Flavor: "Spicy Buffalo"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !c.UnitPrice.Equal(dec(299)) {
		t.Errorf("unit price: got %s, want 299 (flat variation replaces, not adds)", c.UnitPrice)
	}
	if c.Label != "Buffalo Wings (8pc Spicy Buffalo)" {
		t.Errorf("label: got %q", c.Label)
	}
}

func TestResolve_GroupedVariationAddsToBasePrice(t *testing.T) {
	def := Definition{
		ItemID:    "burger-1",
		Name:      "Burger",
		BasePrice: dec(80),
		Variations: Variations{Groups: []Group{{
			Name:     "Size",
			Required: true,
			Options:  []Option{{Name: "Small", Price: dec(0)}, {Name: "Large", Price: dec(20)}},
		}}},
		Addons: []Option{{Name: "Cheese", Price: dec(15)}},
	}

	c, err := Resolve(def, Selection{
		GroupChoices: map[string]string{"Size": "Large"},
		Addons:       []string{"Cheese"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !c.UnitPrice.Equal(dec(115)) {
		t.Errorf("unit price: got %s, want 115 (80 base + 20 group + 15 addon)", c.UnitPrice)
	}
}

func TestCanAdd_GatesOnRequiredGroupAndFlavor(t *testing.T) {
	def := Definition{
		ItemID:    "combo-1",
		Name:      "Combo",
		BasePrice: dec(100),
		Variations: Variations{Groups: []Group{{
			Name:     "Size",
			Required: true,
			Options:  []Option{{Name: "Regular", Price: dec(0)}},
		}}},
		Flavors: []string{"Sweet", "Spicy"},
	}

	if CanAdd(def, Selection{}) {
		t.Error("can-add should be false with nothing selected")
	}
	if CanAdd(def, Selection{GroupChoices: map[string]string{"Size": "Regular"}}) {
		t.Error("can-add should be false while flavor is missing")
	}
	if CanAdd(def, Selection{Flavor: "Sweet"}) {
		t.Error("can-add should be false while required group is missing")
	}
	if !CanAdd(def, Selection{GroupChoices: map[string]string{"Size": "Regular"}, Flavor: "Sweet"}) {
		t.Error("can-add should be true once both selections exist")
	}
}

func TestResolve_OptionalGroupMaySkip(t *testing.T) {
	def := Definition{
		ItemID:    "rice-1",
		Name:      "Rice Bowl",
		BasePrice: dec(60),
		Variations: Variations{Groups: []Group{{
			Name:    "Extra",
			Options: []Option{{Name: "Egg", Price: dec(10)}},
		}}},
	}
	c, err := Resolve(def, Selection{})
	if err != nil {
		t.Fatalf("Resolve with optional group unselected: %v", err)
	}
	if !c.UnitPrice.Equal(dec(60)) {
		t.Errorf("unit price: got %s, want 60", c.UnitPrice)
	}
	if c.Label != "Rice Bowl" {
		t.Errorf("label: got %q, want bare item name", c.Label)
	}
}

func TestResolve_FlatVariationMandatoryWhenPresent(t *testing.T) {
	_, err := Resolve(wingsDef(), Selection{Flavor: "Original"})
	if !errors.Is(err, ErrVariationRequired) {
		t.Errorf("want ErrVariationRequired, got %v", err)
	}
}

func TestResolve_FlavorMandatoryWhenListNonEmpty(t *testing.T) {
	_, err := Resolve(wingsDef(), Selection{Variation: "6pc"})
	if !errors.Is(err, ErrFlavorRequired) {
		t.Errorf("want ErrFlavorRequired, got %v", err)
	}
}

func TestResolve_DiningPreferenceMandatoryZeroPrice(t *testing.T) {
	def := Definition{
		ItemID:        "silog-1",
		Name:          "Chicken Silog",
		BasePrice:     dec(120),
		DiningOptions: []string{"Dine-in", "Takeout"},
	}

	if _, err := Resolve(def, Selection{}); !errors.Is(err, ErrPreferenceRequired) {
		t.Fatalf("want ErrPreferenceRequired, got %v", err)
	}

	c, err := Resolve(def, Selection{DiningPreference: "Takeout"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !c.UnitPrice.Equal(dec(120)) {
		t.Errorf("dining preference must not change price: got %s", c.UnitPrice)
	}
	if c.Label != "Chicken Silog (Takeout)" {
		t.Errorf("label: got %q", c.Label)
	}
}

func TestResolve_AddonsToggleAdditive(t *testing.T) {
	def := Definition{
		ItemID:    "fries-1",
		Name:      "Fries",
		BasePrice: dec(50),
		Addons: []Option{
			{Name: "Cheese", Price: dec(15)},
			{Name: "Bacon", Price: dec(25)},
		},
	}
	c, err := Resolve(def, Selection{Addons: []string{"Cheese", "Bacon"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !c.UnitPrice.Equal(dec(90)) {
		t.Errorf("unit price: got %s, want 90", c.UnitPrice)
	}
	if c.Label != "Fries (Cheese, Bacon)" {
		t.Errorf("label: got %q", c.Label)
	}
}

func TestResolve_PromoPriceIsEffectiveBase(t *testing.T) {
	def := Definition{
		ItemID:     "promo-1",
		Name:       "Promo Meal",
		BasePrice:  dec(200),
		PromoPrice: dec(150),
		HasPromo:   true,
		Addons:     []Option{{Name: "Drink", Price: dec(30)}},
	}
	c, err := Resolve(def, Selection{Addons: []string{"Drink"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !c.UnitPrice.Equal(dec(180)) {
		t.Errorf("unit price: got %s, want 180 (promo base 150 + 30)", c.UnitPrice)
	}
}

func TestResolve_UnknownSelectionsRejected(t *testing.T) {
	if _, err := Resolve(wingsDef(), Selection{Variation: "12pc", Flavor: "Original"}); !errors.Is(err, ErrUnknownVariation) {
		t.Errorf("want ErrUnknownVariation, got %v", err)
	}
	if _, err := Resolve(wingsDef(), Selection{Variation: "6pc", Flavor: "Garlic"}); !errors.Is(err, ErrUnknownFlavor) {
		t.Errorf("want ErrUnknownFlavor, got %v", err)
	}
}

func TestIdentityKey_StableAndDistinct(t *testing.T) {
	def := wingsDef()

	a, err := Resolve(def, Selection{Variation: "8pc", Flavor: "Original", Addons: []string{"x", "y"}})
	if err == nil {
		t.Fatal("unknown addons should error") // wings has no addons
	}

	a, err = Resolve(def, Selection{Variation: "8pc", Flavor: "Original"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := Resolve(def, Selection{Variation: "8pc", Flavor: "Original"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a.Key != b.Key {
		t.Errorf("identical selections must share a key: %q vs %q", a.Key, b.Key)
	}

	c, err := Resolve(def, Selection{Variation: "8pc", Flavor: "Spicy Buffalo"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a.Key == c.Key {
		t.Error("different flavors must produce distinct keys")
	}
}

func TestIdentityKey_AddonOrderIrrelevant(t *testing.T) {
	def := Definition{
		ItemID:    "fries-1",
		Name:      "Fries",
		BasePrice: dec(50),
		Addons: []Option{
			{Name: "Cheese", Price: dec(15)},
			{Name: "Bacon", Price: dec(25)},
		},
	}
	a, err := Resolve(def, Selection{Addons: []string{"Cheese", "Bacon"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := Resolve(def, Selection{Addons: []string{"Bacon", "Cheese"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a.Key != b.Key {
		t.Errorf("addon toggle order must not change identity: %q vs %q", a.Key, b.Key)
	}
}
