// Command gentemplate generates the Excel import template for news sources.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	// Rename Sheet1 to Sources
	if err := f.SetSheetName("Sheet1", "Sources"); err != nil {
		log.Fatal(err)
	}

	// Add headers
	headers := []string{"name", "feed_url", "type", "enabled"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Sources", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	// Add example rows
	rows := [][]string{
		{"AI Watch", "https://aiwatch.example.com/feed.xml", "rss", "true"},
		{"Local Tech Blog", "https://blog.local/rss", "rss", "false"},
	}
	for r, row := range rows {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				log.Fatal(err)
			}
			if err := f.SetCellValue("Sources", cell, v); err != nil {
				log.Fatal(err)
			}
		}
	}

	// Create Instructions sheet
	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"name - Required. Display name for the source",
		"feed_url - Required. Feed URL (must start with http:// or https://); used as the upsert key",
		"type - Optional. rss or api (default: rss)",
		"enabled - Optional. true/false/1/0/yes/no (default: false)",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	// Ensure examples directory exists
	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}

	// Save the file
	if err := f.SaveAs("examples/source-import-template.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/source-import-template.xlsx")
}
