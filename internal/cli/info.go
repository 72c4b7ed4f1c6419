package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"draftkit/internal/catalog"
	"draftkit/internal/logging"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version and data directory information",
	RunE:  runInfo,
}

var infoJSON bool

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
}

type dataInfo struct {
	LicensedTo      string `json:"licensed_to"`
	DownloadDate    string `json:"download_date"`
	TailwindVersion string `json:"tailwind_version"`
	ElementsVersion string `json:"elements_version"`
	ComponentCounts struct {
		React int `json:"react"`
		Vue   int `json:"vue"`
		HTML  int `json:"html"`
		Total int `json:"total"`
	} `json:"component_counts"`
	TemplateCount int `json:"template_count"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	paths, _ := loadPaths()
	cat := openCatalog(paths)

	var data *dataInfo
	if manifest, err := catalog.LoadManifest(paths.ManifestFile()); err == nil {
		data = &dataInfo{
			LicensedTo:      manifest.DownloadedBy,
			DownloadDate:    manifest.DownloadDate,
			TailwindVersion: manifest.Versions.Tailwind,
			ElementsVersion: manifest.Versions.Elements,
			TemplateCount:   len(manifest.Templates),
		}
		data.ComponentCounts.React = cat.ComponentCount(catalog.FrameworkReact)
		data.ComponentCounts.Vue = cat.ComponentCount(catalog.FrameworkVue)
		data.ComponentCounts.HTML = cat.ComponentCount(catalog.FrameworkHTML)
		data.ComponentCounts.Total = cat.TotalCount()
	} else {
		logging.Debug("No runtime manifest", "error", err)
	}

	if infoJSON {
		out := struct {
			Name    string    `json:"name"`
			Version string    `json:"version"`
			Catalog string    `json:"catalog_source"`
			Data    *dataInfo `json:"data,omitempty"`
		}{Name: "draftkit", Version: Version, Catalog: cat.Source().String(), Data: data}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("draftkit %s\n", Version)
	fmt.Println("UI component catalog and page composition for TailwindPlus")
	fmt.Println()

	const kvWidth = 22
	styler.PrintKV("Catalog source", cat.Source().String(), kvWidth)
	if data == nil {
		styler.PrintInfo("No runtime data directory; the embedded catalog is in use")
		return nil
	}

	fmt.Println()
	styler.PrintHeader("Runtime data")
	styler.PrintKV("TailwindPlus account", data.LicensedTo, kvWidth)
	styler.PrintKV("Download date", data.DownloadDate, kvWidth)
	styler.PrintKV("Tailwind", "v"+data.TailwindVersion, kvWidth)
	styler.PrintKV("Elements", "v"+data.ElementsVersion, kvWidth)
	fmt.Println()
	styler.PrintHeader("Component counts")
	styler.PrintKV("React", fmt.Sprintf("%4d", data.ComponentCounts.React), kvWidth)
	styler.PrintKV("Vue", fmt.Sprintf("%4d", data.ComponentCounts.Vue), kvWidth)
	styler.PrintKV("HTML", fmt.Sprintf("%4d", data.ComponentCounts.HTML), kvWidth)
	styler.PrintKV("Total", fmt.Sprintf("%4d", data.ComponentCounts.Total), kvWidth)
	fmt.Println()
	styler.PrintKV("Templates", fmt.Sprintf("%d", data.TemplateCount), kvWidth)
	return nil
}
