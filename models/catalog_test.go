package models

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/stock_planner/utils"
)

func TestPresetCatalog(t *testing.T) {
	basic, err := PresetCatalog(CatalogPresetBasic, []string{"1주차", "2주차", "3주차"})
	if err != nil {
		t.Fatalf("PresetCatalog basic: %v", err)
	}
	if len(basic.Products) != 3 || len(basic.Weeks) != 3 {
		t.Fatalf("unexpected basic catalog %+v", basic)
	}
	sku, err := PresetCatalog(CatalogPresetSku, []string{"w1"})
	if err != nil {
		t.Fatalf("PresetCatalog sku: %v", err)
	}
	if len(sku.Products) != 8 {
		t.Fatalf("expected 8 sku products, got %d", len(sku.Products))
	}
	if err := sku.Validate(); err != nil {
		t.Fatalf("sku catalog should validate: %v", err)
	}

	sku.Products[0] = "changed"
	again, _ := PresetCatalog(CatalogPresetSku, []string{"w1"})
	if again.Products[0] == "changed" {
		t.Fatalf("preset must return a copy")
	}

	if _, err := PresetCatalog("nope", nil); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}

func TestCatalogValidate(t *testing.T) {
	if err := (Catalog{Weeks: []string{"w1"}}).Validate(); !errors.Is(err, utils.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if err := (Catalog{Products: []string{"A", "A"}, Weeks: []string{"w1"}}).Validate(); err == nil {
		t.Fatalf("expected duplicate products to fail")
	}
	if err := (Catalog{Products: []string{"A", ""}, Weeks: []string{"w1"}}).Validate(); err == nil {
		t.Fatalf("expected blank product to fail")
	}
	if err := (Catalog{Products: []string{"A"}}).Validate(); err == nil {
		t.Fatalf("expected missing weeks to fail")
	}
	if err := (Catalog{Products: []string{"A", "B"}, Weeks: []string{"w1", "w2"}}).Validate(); err != nil {
		t.Fatalf("expected valid catalog, got %v", err)
	}
}

func TestLayoutFor(t *testing.T) {
	ko, err := LayoutFor("")
	if err != nil || ko.StockSheet != "현재재고" || ko.HistorySheet != "샘플링실적" {
		t.Fatalf("default layout should be korean, got %+v (%v)", ko, err)
	}
	en, err := LayoutFor("en")
	if err != nil || en.StockSheet != "Current Stock" {
		t.Fatalf("unexpected en layout %+v (%v)", en, err)
	}
	if _, err := LayoutFor("fr"); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
	if en.StatusLabel(StatusShortage) != en.Labels.StatusShortage || en.StatusLabel(StatusOK) != en.Labels.StatusOK {
		t.Fatalf("unexpected status labels")
	}
	if ko.ShortageMessage(2) != "총 2개 품목의 재고가 부족합니다. 발주가 필요합니다." {
		t.Fatalf("unexpected shortage message %q", ko.ShortageMessage(2))
	}
}
