package models

import (
	"fmt"

	"bitbucket.org/mmdatafocus/stock_planner/utils"
)

// Catalog is the ordered list of products the planner tracks together with
// the week labels the sampling sheet is pre-filled with.
type Catalog struct {
	Products []string `json:"products" yaml:"products" validate:"required,min=1,unique,dive,required"`
	Weeks    []string `json:"weeks" yaml:"weeks" validate:"required,min=1,unique,dive,required"`
}

type CatalogPreset string

const (
	CatalogPresetBasic CatalogPreset = "basic"
	CatalogPresetSku   CatalogPreset = "sku"
)

var catalogPresets = map[CatalogPreset][]string{
	CatalogPresetBasic: {
		"센소다인",
		"파로돈탁스",
		"폴리덴트 의치 세정제",
	},
	CatalogPresetSku: {
		"센소다인 멀티케어 18g",
		"센소다인 멀티케어 14g",
		"센소다인 검케어 14g",
		"파로돈탁스 쿨링민트 18g",
		"파로돈탁스 쿨링민트 14g",
		"파로돈탁스 AGR 14g",
		"폴리덴트 의치용 세정제 6T",
		"폴리덴트 교정기용 세정제 6T",
	},
}

// PresetCatalog returns a copy of a built-in catalog using the given weeks.
func PresetCatalog(preset CatalogPreset, weeks []string) (Catalog, error) {
	products, ok := catalogPresets[preset]
	if !ok {
		return Catalog{}, fmt.Errorf("unknown catalog preset %q", preset)
	}
	return Catalog{
		Products: append([]string(nil), products...),
		Weeks:    append([]string(nil), weeks...),
	}, nil
}

func (c Catalog) Validate() error {
	if len(c.Products) == 0 {
		return utils.ErrEmptyCatalog
	}
	return utils.ValidateStruct(c)
}

func (c Catalog) Contains(product string) bool {
	for _, p := range c.Products {
		if p == product {
			return true
		}
	}
	return false
}
