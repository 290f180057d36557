package cli

import (
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/classgraph/pkg/io"
	"github.com/matzehuels/classgraph/pkg/pipeline"
)

// modelCommand creates the command exporting the parsed class model as JSON.
func (c *CLI) modelCommand() *cobra.Command {
	var configPath, output string
	cmd := &cobra.Command{
		Use:   "model [sources...]",
		Short: "Export the parsed class model as JSON",
		Long: `Parse the Java sources and write the class model as JSON.

The JSON file can be drawn later with --model without parsing the sources again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			sources := args
			if len(sources) == 0 {
				sources = cfg.Sources
			}
			prog := newProgress(c.Logger)
			u, err := c.load(cmd.Context(), sources, "")
			if err != nil {
				return err
			}

			if output == "" || output == pipeline.StdoutName {
				return pkgio.WriteJSON(u, os.Stdout)
			}
			if err := pkgio.ExportJSON(u, output); err != nil {
				return err
			}
			prog.done("Exported class model")
			printSuccess("Exported %d classes", u.Len())
			printFile(output)
			printNextStep("Draw it", "classgraph diagram --model "+output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default "+defaultConfigFile+" if present)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - or empty for stdout")
	return cmd
}
