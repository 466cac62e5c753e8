// Package menu implements item customization: resolving a customer's
// selections against a menu item's option axes into a priced, labelled,
// identity-keyed line ready for the cart.
package menu

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Errors returned when a selection is incomplete or references unknown options.
var (
	ErrVariationRequired  = errors.New("variation selection is required")
	ErrGroupRequired      = errors.New("selection required for variation group")
	ErrFlavorRequired     = errors.New("flavor selection is required")
	ErrPreferenceRequired = errors.New("dining preference is required")
	ErrUnknownVariation   = errors.New("unknown variation")
	ErrUnknownFlavor      = errors.New("unknown flavor")
	ErrUnknownAddon       = errors.New("unknown add-on")
	ErrUnknownPreference  = errors.New("unknown dining preference")
)

// Option is a named choice with a price contribution.
type Option struct {
	Name  string
	Price decimal.Decimal
}

// Group is a named variation section. Each group independently declares
// whether a selection is mandatory. Selected option prices ADD to the base
// price, unlike the flat shape where the selection REPLACES it.
type Group struct {
	Name     string
	Required bool
	Options  []Option
}

// Variations is a tagged variant: exactly one of Flat or Groups is set when
// the item declares variations at all. The two shapes carry different pricing
// semantics and are never collapsed into each other.
type Variations struct {
	Flat   []Option
	Groups []Group
}

func (v Variations) IsZero() bool {
	return len(v.Flat) == 0 && len(v.Groups) == 0
}

// Definition is everything the engine needs to know about a menu item.
type Definition struct {
	ItemID        string
	Name          string
	BasePrice     decimal.Decimal
	PromoPrice    decimal.Decimal // zero when unset
	HasPromo      bool
	Variations    Variations
	Flavors       []string
	Addons        []Option
	DiningOptions []string
	OutOfStock    bool
}

// EffectiveBasePrice is the price customization starts from: the promo price
// when one is set, otherwise the regular price.
func (d Definition) EffectiveBasePrice() decimal.Decimal {
	if d.HasPromo {
		return d.PromoPrice
	}
	return d.BasePrice
}

// Selection accumulates the customer's choices for one item.
type Selection struct {
	Variation        string            // flat-shape choice
	GroupChoices     map[string]string // group name -> option name
	Flavor           string
	Addons           []string
	DiningPreference string
}

// Customization is a fully resolved selection.
type Customization struct {
	UnitPrice decimal.Decimal
	Label     string
	Key       string // stable identity for cart merging
}

// CanAdd reports whether every mandatory axis has a selection. It mirrors
// Resolve's completion gate without computing price or label.
func CanAdd(def Definition, sel Selection) bool {
	_, err := Resolve(def, sel)
	return err == nil
}

// Resolve validates the selection against the definition and produces the
// unit price, display label, and identity key.
//
// Pricing: the flat variation price replaces the base price; each grouped
// selection and each add-on adds to it. Flavors and dining preferences never
// contribute price.
func Resolve(def Definition, sel Selection) (Customization, error) {
	price := def.EffectiveBasePrice()

	// First label segment: variation choice(s) and flavor, space-joined the
	// way the storefront renders them, e.g. "Wings (8pc Spicy Buffalo)".
	var head []string

	switch {
	case len(def.Variations.Flat) > 0:
		if sel.Variation == "" {
			return Customization{}, ErrVariationRequired
		}
		opt, ok := findOption(def.Variations.Flat, sel.Variation)
		if !ok {
			return Customization{}, fmt.Errorf("%w: %s", ErrUnknownVariation, sel.Variation)
		}
		price = opt.Price
		head = append(head, opt.Name)

	case len(def.Variations.Groups) > 0:
		for _, g := range def.Variations.Groups {
			choice := ""
			if sel.GroupChoices != nil {
				choice = sel.GroupChoices[g.Name]
			}
			if choice == "" {
				if g.Required {
					return Customization{}, fmt.Errorf("%w: %s", ErrGroupRequired, g.Name)
				}
				continue
			}
			opt, ok := findOption(g.Options, choice)
			if !ok {
				return Customization{}, fmt.Errorf("%w: %s in group %s", ErrUnknownVariation, choice, g.Name)
			}
			price = price.Add(opt.Price)
			head = append(head, opt.Name)
		}
	}

	if len(def.Flavors) > 0 {
		if sel.Flavor == "" {
			return Customization{}, ErrFlavorRequired
		}
		if !contains(def.Flavors, sel.Flavor) {
			return Customization{}, fmt.Errorf("%w: %s", ErrUnknownFlavor, sel.Flavor)
		}
		head = append(head, sel.Flavor)
	}

	var addonNames []string
	for _, name := range sel.Addons {
		opt, ok := findOption(def.Addons, name)
		if !ok {
			return Customization{}, fmt.Errorf("%w: %s", ErrUnknownAddon, name)
		}
		price = price.Add(opt.Price)
		addonNames = append(addonNames, opt.Name)
	}

	if len(def.DiningOptions) > 0 {
		if sel.DiningPreference == "" {
			return Customization{}, ErrPreferenceRequired
		}
		if !contains(def.DiningOptions, sel.DiningPreference) {
			return Customization{}, fmt.Errorf("%w: %s", ErrUnknownPreference, sel.DiningPreference)
		}
	}

	var segments []string
	if len(head) > 0 {
		segments = append(segments, strings.Join(head, " "))
	}
	if len(addonNames) > 0 {
		segments = append(segments, strings.Join(addonNames, ", "))
	}
	if sel.DiningPreference != "" {
		segments = append(segments, sel.DiningPreference)
	}

	label := def.Name
	if len(segments) > 0 {
		label = fmt.Sprintf("%s (%s)", def.Name, strings.Join(segments, " | "))
	}

	return Customization{
		UnitPrice: price,
		Label:     label,
		Key:       identityKey(def, sel),
	}, nil
}

// identityKey builds the composite cart identity: base item plus the
// serialized selection. Two identical customizations of the same item always
// produce the same key; any differing choice produces a different one.
func identityKey(def Definition, sel Selection) string {
	var b strings.Builder
	b.WriteString(def.ItemID)

	if sel.Variation != "" {
		b.WriteString("|v=")
		b.WriteString(sel.Variation)
	}
	if len(sel.GroupChoices) > 0 {
		// Group declaration order keeps the key deterministic.
		for _, g := range def.Variations.Groups {
			if choice := sel.GroupChoices[g.Name]; choice != "" {
				b.WriteString("|g=")
				b.WriteString(g.Name)
				b.WriteString(":")
				b.WriteString(choice)
			}
		}
	}
	if sel.Flavor != "" {
		b.WriteString("|f=")
		b.WriteString(sel.Flavor)
	}
	if len(sel.Addons) > 0 {
		addons := append([]string(nil), sel.Addons...)
		sort.Strings(addons)
		b.WriteString("|a=")
		b.WriteString(strings.Join(addons, ","))
	}
	if sel.DiningPreference != "" {
		b.WriteString("|p=")
		b.WriteString(sel.DiningPreference)
	}
	return b.String()
}

func findOption(opts []Option, name string) (Option, bool) {
	for _, o := range opts {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
