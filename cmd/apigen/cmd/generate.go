package cmd

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-apigen/apigen/descriptor"
	"github.com/deploymenttheory/go-apigen/apigen/emit/sourcetext"
	"github.com/deploymenttheory/go-apigen/apigen/generate"
	"github.com/deploymenttheory/go-apigen/apigen/serialize/jsoncodec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	input  string
	output string
	pkg    string
}

func newGenerateOptionsWithDefault() *generateOptions {
	return &generateOptions{pkg: "generated"}
}

func newGenerateCommand() *cobra.Command {
	opts := newGenerateOptionsWithDefault()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Go client from a descriptor file",
		Long: `Generate reads a YAML or JSON descriptor of one annotated service
interface and writes the generated Go client source to --output (stdout
if omitted).`,
		Args: cobra.NoArgs,
		Example: `  # Generate from a descriptor, writing to a file
  apigen generate --input users_api.yaml --output users_client.go --package users

  # Generate to stdout
  apigen generate -i users_api.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mgr != nil {
				if opts.input == "" {
					opts.input = mgr.Get("input")
				}
				if opts.output == "" {
					opts.output = mgr.Get("output")
				}
				if cmd.Flags().Changed("package") {
					mgr.Set("package", opts.pkg)
				} else if p := mgr.Get("package"); p != "" {
					opts.pkg = p
				}
			}

			if opts.input == "" {
				return fmt.Errorf("generate: --input is required")
			}

			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "path to the descriptor file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "path to write the generated Go source (default: stdout)")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", opts.pkg, "package name for the generated source")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	data, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("generate: read %s: %w", opts.input, err)
	}

	typeModel, err := descriptor.Decode(data)
	if err != nil {
		return fmt.Errorf("generate: decode %s: %w", opts.input, err)
	}

	backend := sourcetext.New(opts.pkg)
	gen := generate.New(backend, logger)
	gen.IsDictionary = jsoncodec.IsDictionary

	result, err := gen.Generate(cmd.Context(), typeModel)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if result.HasErrors() {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s", d.Code, d.Entity)
			if d.Key != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), " (key %q)", d.Key)
			}
			fmt.Fprintln(cmd.ErrOrStderr())
		}
		return fmt.Errorf("generate: %s raised %d diagnostic(s)", typeModel.Name, len(result.Diagnostics))
	}

	source, ok := result.Artifact.(string)
	if !ok {
		return fmt.Errorf("generate: backend produced unexpected artifact type %T", result.Artifact)
	}

	if opts.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), source)
		return err
	}

	if err := os.WriteFile(opts.output, []byte(source), 0o644); err != nil {
		return fmt.Errorf("generate: write %s: %w", opts.output, err)
	}
	logger.Info("wrote generated client", zap.String("output", opts.output), zap.String("type", typeModel.Name))
	return nil
}
