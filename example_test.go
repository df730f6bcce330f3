package gravy_test

import (
	"fmt"
	"log"

	"github.com/tsawler/gravy"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/tables"
)

func examplePage() *model.Page {
	word := func(x0, x1, y float64, text string) *model.Word {
		return model.NewWord(model.Box{X0: x0, X1: x1, Y0: y, Y1: y + 10}, text, "Arial_10")
	}
	p := model.NewPage(1, 400, 400)
	p.AddWord(word(20, 120, 300, "Income statement"))
	p.AddWord(word(140, 160, 260, "FY18"))
	p.AddWord(word(190, 210, 260, "FY19"))
	p.AddWord(word(240, 260, 260, "FY20"))
	p.AddWord(word(20, 80, 240, "Revenue"))
	p.AddWord(word(142, 158, 240, "10"))
	p.AddWord(word(192, 208, 240, "12"))
	p.AddWord(word(242, 258, 240, "14"))
	p.AddWord(word(20, 80, 220, "Cost"))
	p.AddWord(word(142, 158, 220, "7"))
	p.AddWord(word(192, 208, 220, "8"))
	p.AddWord(word(242, 258, 220, "9"))
	return p
}

func ExampleFromPages() {
	found, warnings, err := gravy.FromPages(examplePage()).Tables()
	if err != nil {
		log.Fatal(err)
	}
	if len(warnings) > 0 {
		log.Println("Warnings:", gravy.FormatWarnings(warnings))
	}
	for _, t := range found {
		fmt.Println(t)
	}
	// Output: Income statement, 240, 270
}

func ExampleExtractTables() {
	found, err := gravy.ExtractTables(examplePage(), tables.DefaultSettings())
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range found {
		fmt.Print(t.Matrix().ToMarkdown())
	}
	// Output:
	// |  | FY18 | FY19 | FY20 |
	// |---|---|---|---|
	// | Revenue | 10 | 12 | 14 |
}
