package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/stock_planner/config"
	"bitbucket.org/mmdatafocus/stock_planner/models"
	"bitbucket.org/mmdatafocus/stock_planner/spreadsheet"
	"bitbucket.org/mmdatafocus/stock_planner/workflow"
	"github.com/sirupsen/logrus"
)

// applyFlags overrides the environment settings with any flags given and
// returns the output path. -preset replaces any catalog from the environment.
func applyFlags(settings *config.Settings, out, layoutName, preset, catalogFile string) string {
	if v := strings.TrimSpace(layoutName); v != "" {
		settings.SheetLayout = v
	}
	if v := strings.TrimSpace(preset); v != "" {
		settings.CatalogPreset = v
		settings.CatalogProducts = ""
		settings.CatalogFile = ""
	}
	if v := strings.TrimSpace(catalogFile); v != "" {
		settings.CatalogFile = v
	}
	if path := strings.TrimSpace(out); path != "" {
		return path
	}
	return settings.TemplateFilename
}

func main() {
	out := flag.String("out", "", "Optional: output path (defaults to TEMPLATE_FILENAME)")
	layoutName := flag.String("layout", "", "Optional: sheet layout (ko/en). Defaults to SHEET_LAYOUT.")
	preset := flag.String("preset", "", "Optional: catalog preset (basic/sku). Defaults to CATALOG_PRESET.")
	catalogFile := flag.String("catalog-file", "", "Optional: YAML catalog file. Overrides -preset.")
	flag.Parse()

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}
	path := applyFlags(settings, *out, *layoutName, *preset, *catalogFile)

	layout, err := models.LayoutFor(settings.SheetLayout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	catalog, err := config.LoadCatalog(settings, layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	data, err := workflow.GenerateTemplate(context.Background(), spreadsheet.NewExcelWorkbook(), catalog, layout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate template: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}

	config.GetLogger().WithFields(logrus.Fields{
		"out":      path,
		"layout":   layout.Locale,
		"products": len(catalog.Products),
		"weeks":    len(catalog.Weeks),
	}).Info("template written")
}
