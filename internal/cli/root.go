package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Execute runs the swagger2retrofit CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swagger2retrofit [flags] <input> <output>",
		Short: "Generate Kotlin Retrofit services and DTOs from OpenAPI/Swagger documents",
		Long: "swagger2retrofit reads an OpenAPI 3 or Swagger 2 document (file or http/https URL) " +
			"and writes Retrofit service interfaces and Gson data classes under the output directory.",
		Example: strings.TrimSpace(`  swagger2retrofit openapi.yaml ./generated
  swagger2retrofit --config swagger2retrofit.yaml --dry-run https://example.com/openapi.json ./generated`),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(c *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(c, args); err != nil {
				return newUsageError(fmt.Sprintf("%v (expected <input> <output>)\n\n%s", err, c.UsageString()))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Config file path (YAML or JSON)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Bool("dry-run", false, "Print the planned files without writing anything")
	flags.String("log-format", "", "Log output format (text|json); defaults to text")

	return cmd
}
