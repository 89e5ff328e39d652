package main

import (
	"context"
	"fmt"

	"github.com/loopcontext/msgcode"
	"github.com/loopcontext/msgcode/resource"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [flags] resource...",
	Short: "Merge message resources into one file",
	Long: `Merge loads resources in order into a single catalog and writes it out.
The first resource is the base; the following ones are merged with --mode
(replace-exists unless set otherwise). The output format follows the
extension of --out; YAML is written to stdout.

To fill a translation with the codes it lacks, keep its own templates:

  msgcode merge --mode skip-exists -o fr.yaml fr.yaml en.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		locators := args
		if len(locators) == 0 {
			locators = app.cfg.Resources
		}

		mode := app.cfg.Mode
		if !cmd.Flags().Changed("mode") && mode == msgcode.ReplaceAll {
			mode = msgcode.ReplaceExists
		}

		out, _ := cmd.Flags().GetString("out")

		c, err := mergeResources(cmd.Context(), app.loader(), locators, mode)
		if err != nil {
			return err
		}

		if out != "" {
			return writeResource(out, msgcode.Entries(c))
		}
		return resource.Write(cmd.OutOrStdout(), resource.FormatYAML, msgcode.Entries(c))
	},
}

func init() {
	mergeCmd.Flags().StringP("out", "o", "", "output file (default stdout, YAML)")
}

// mergeResources reads every resource before returning so that an output
// file may also be one of the inputs.
func mergeResources(ctx context.Context, loader msgcode.Loader, locators []string, mode msgcode.LoadMode) (*msgcode.DefaultCatalog, error) {
	if len(locators) == 0 {
		return nil, fmt.Errorf("merge: no resource given")
	}

	c := msgcode.New(msgcode.Config{})
	for i, locator := range locators {
		m := mode
		if i == 0 {
			m = msgcode.ReplaceAll
		}
		if err := c.Load(ctx, loader, locator, m); err != nil {
			return nil, err
		}
	}
	return c, nil
}
