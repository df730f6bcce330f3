package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/gravy/tables"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <file>",
	Short: "Print the blocks each page splits into",
	Long: `Segment splits each page into blocks of words separated by white space
or horizontal rule lines, and prints each block's box and opening words.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)
}

// preview is how many words of a block are printed
const preview = 6

func runSegment(cmd *cobra.Command, args []string) error {
	ext, err := newExtractor(args[0])
	if err != nil {
		return err
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}

	doc, warnings, err := ext.Document()
	printWarnings(warnings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range doc.Pages {
		for i, b := range tables.Segment(tables.Prepare(p, s), s) {
			box := b.Bounds()
			var words []string
			for _, w := range b.Items() {
				if len(words) == preview {
					words = append(words, "...")
					break
				}
				words = append(words, w.Text)
			}
			fmt.Fprintf(out, "page %d block %d [%.1f %.1f %.1f %.1f] %d words: %s\n",
				p.Number, i+1, box.X0, box.X1, box.Y0, box.Y1, b.Len(), strings.Join(words, " "))
		}
	}
	return nil
}
