package config

import (
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/utils"
	"gopkg.in/yaml.v3"
)

// LoadCatalog resolves the product catalog. CATALOG_FILE wins over
// CATALOG_PRODUCTS, which wins over CATALOG_PRESET. Weeks come from the file,
// then CATALOG_WEEKS, then the sheet layout.
func LoadCatalog(s *Settings, layout models.SheetLayout) (models.Catalog, error) {
	weeks := utils.SplitAndTrim(s.CatalogWeeks)
	if len(weeks) == 0 {
		weeks = layout.Weeks
	}

	var catalog models.Catalog
	switch {
	case s.CatalogFile != "":
		fromFile, err := ReadCatalogFile(s.CatalogFile)
		if err != nil {
			return models.Catalog{}, err
		}
		catalog = fromFile
		if len(catalog.Weeks) == 0 {
			catalog.Weeks = append([]string(nil), weeks...)
		}
	case s.CatalogProducts != "":
		catalog = models.Catalog{
			Products: utils.SplitAndTrim(s.CatalogProducts),
			Weeks:    append([]string(nil), weeks...),
		}
	default:
		preset, err := models.PresetCatalog(models.CatalogPreset(s.CatalogPreset), weeks)
		if err != nil {
			return models.Catalog{}, err
		}
		catalog = preset
	}

	if err := catalog.Validate(); err != nil {
		return models.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil
}

// ReadCatalogFile reads a YAML catalog:
//
//	products:
//	  - Product A
//	weeks:
//	  - Week 1
func ReadCatalogFile(path string) (models.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("could not read catalog file: %w", err)
	}
	var catalog models.Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return models.Catalog{}, fmt.Errorf("could not parse catalog file %s: %w", path, err)
	}
	return catalog, nil
}
