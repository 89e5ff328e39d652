package main

import (
	"fmt"
	"io"
	"os"

	"github.com/loopcontext/msgcode"
	"github.com/loopcontext/msgcode/export"
	"github.com/loopcontext/msgcode/resource"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog",
	Long: `Export writes the catalog as a client-side script (js), a msgpack bundle
or a resource file (properties, xml, yaml, toml).`,
	Args: cobra.NoArgs,
	RunE: runExportCmd,
}

func init() {
	exportCmd.Flags().StringP("format", "f", "js", "output format (js|msgpack|properties|xml|yaml|toml)")
	exportCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	c, err := app.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	return writeOutput(out, cmd.OutOrStdout(), func(w io.Writer) error {
		return runExport(w, c, format)
	})
}

func runExport(w io.Writer, c msgcode.Catalog, format string) error {
	switch format {
	case "js":
		return export.WriteScript(w, c)
	case "msgpack":
		return export.WriteBundle(w, c)
	case "properties":
		return resource.Write(w, resource.FormatProperties, msgcode.Entries(c))
	case "xml":
		return resource.Write(w, resource.FormatXML, msgcode.Entries(c))
	case "yaml":
		return resource.Write(w, resource.FormatYAML, msgcode.Entries(c))
	case "toml":
		return resource.Write(w, resource.FormatTOML, msgcode.Entries(c))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeOutput runs fn against path, or against stdout when path is empty.
func writeOutput(path string, stdout io.Writer, fn func(io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}

	app.logger().Info("wrote output", zap.String("path", path))
	return nil
}
