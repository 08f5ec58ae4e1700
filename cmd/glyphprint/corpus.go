package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/glyphprint/glyphprint/internal/config"
	"github.com/glyphprint/glyphprint/internal/corpus"
)

// NewCorpusCmd creates the corpus command.
func NewCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Show the font corpus used by scans",
		Long: `Corpus lists the candidate fonts a scan probes.

The built-in corpus mixes web-safe families with fonts commonly bundled
with Windows, macOS, and Linux. Additional names can be merged in from
a YAML file, with duplicates removed case-insensitively.

Examples:
  # List the built-in corpus
  glyphprint corpus

  # List the corpus extended with custom names
  glyphprint corpus --file extra-fonts.yaml

  # Check whether a font is in the corpus
  glyphprint corpus --contains "Comic Sans MS"`,
		Args: cobra.NoArgs,
		RunE: runCorpusCmd,
	}

	cmd.Flags().StringP("file", "f", "",
		"YAML file of additional font names to merge into the corpus")
	cmd.Flags().String("contains", "",
		"Check whether the given font name is in the corpus")
	cmd.Flags().Bool("count", false,
		"Print only the corpus size")

	return cmd
}

// runCorpusCmd executes the corpus command.
func runCorpusCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	if cfg.CorpusFile, err = cmd.Flags().GetString("file"); err != nil {
		return err
	}

	c, err := buildCorpus(cfg)
	if err != nil {
		return err
	}

	if name, err := cmd.Flags().GetString("contains"); err != nil {
		return err
	} else if name != "" {
		if c.Contains(name) {
			fmt.Printf("%q is in the corpus (%d fonts)\n", name, c.Len())
			return nil
		}
		return fmt.Errorf("%q is not in the corpus", name)
	}

	if countOnly, err := cmd.Flags().GetBool("count"); err != nil {
		return err
	} else if countOnly {
		fmt.Println(c.Len())
		return nil
	}

	renderCorpusTable(c)
	return nil
}

// renderCorpusTable prints the corpus as a table.
func renderCorpusTable(c *corpus.Corpus) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Font"})

	for i, font := range c.Fonts() {
		t.AppendRow(table.Row{i + 1, font})
	}

	t.AppendFooter(table.Row{"Total", t.Length()})
	t.Render()
}
