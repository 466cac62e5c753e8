package menu

import (
	"encoding/json"
	"fmt"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// The stored JSON shapes predate this service and vary by revision:
// prices appear as both numbers and numeric strings, flavors as both bare
// strings and {"name": ...} records, and variations in two structural
// shapes. Decoding is tolerant of all observed forms; anything else errors.

type jsonPrice struct {
	decimal.Decimal
}

func (p *jsonPrice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			p.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", s, err)
		}
		p.Decimal = d
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	p.Decimal = d
	return nil
}

type jsonOption struct {
	Name  string    `json:"name"`
	Price jsonPrice `json:"price"`
}

type jsonGroup struct {
	GroupName string       `json:"group_name"`
	Required  bool         `json:"required"`
	Options   []jsonOption `json:"options"`
}

// DecodeVariations resolves which of the two variation shapes is stored by
// inspecting the first element: presence of an "options" nesting means the
// grouped shape. An empty or null document yields zero variations.
func DecodeVariations(raw []byte) (Variations, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Variations{}, nil
	}
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Variations{}, fmt.Errorf("decode variations: %w", err)
	}
	if len(probe) == 0 {
		return Variations{}, nil
	}

	if _, grouped := probe[0]["options"]; grouped {
		var groups []jsonGroup
		if err := json.Unmarshal(raw, &groups); err != nil {
			return Variations{}, fmt.Errorf("decode variation groups: %w", err)
		}
		out := make([]Group, len(groups))
		for i, g := range groups {
			out[i] = Group{Name: g.GroupName, Required: g.Required, Options: toOptions(g.Options)}
		}
		return Variations{Groups: out}, nil
	}

	var flat []jsonOption
	if err := json.Unmarshal(raw, &flat); err != nil {
		return Variations{}, fmt.Errorf("decode flat variations: %w", err)
	}
	return Variations{Flat: toOptions(flat)}, nil
}

// DecodeFlavors accepts both a list of strings and a list of {"name": ...}
// records.
func DecodeFlavors(raw []byte) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return names, nil
	}
	var records []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode flavors: %w", err)
	}
	names = make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names, nil
}

// DecodeAddons decodes the {name, price} add-on list.
func DecodeAddons(raw []byte) ([]Option, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var addons []jsonOption
	if err := json.Unmarshal(raw, &addons); err != nil {
		return nil, fmt.Errorf("decode addons: %w", err)
	}
	return toOptions(addons), nil
}

// DecodeDiningOptions decodes the mandatory free-choice option list.
func DecodeDiningOptions(raw []byte) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("decode dining options: %w", err)
	}
	return names, nil
}

// DefinitionFromRecord builds an engine Definition from a stored menu item.
func DefinitionFromRecord(m database.MenuItem) (Definition, error) {
	def := Definition{
		ItemID:     m.ID.String(),
		Name:       m.Name,
		OutOfStock: m.OutOfStock,
	}

	def.BasePrice = numericToDecimal(m.Price)
	if m.PromoPrice.Valid {
		def.PromoPrice = numericToDecimal(m.PromoPrice)
		def.HasPromo = true
	}

	var err error
	if def.Variations, err = DecodeVariations(m.Variations); err != nil {
		return Definition{}, err
	}
	if def.Flavors, err = DecodeFlavors(m.Flavors); err != nil {
		return Definition{}, err
	}
	if def.Addons, err = DecodeAddons(m.Addons); err != nil {
		return Definition{}, err
	}
	if def.DiningOptions, err = DecodeDiningOptions(m.DiningOptions); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func toOptions(in []jsonOption) []Option {
	out := make([]Option, len(in))
	for i, o := range in {
		out[i] = Option{Name: o.Name, Price: o.Price.Decimal}
	}
	return out
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}
