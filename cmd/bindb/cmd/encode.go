package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/bindb/pkg/manifest"
)

func newEncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <manifest.yaml>",
		Short: "Build a binary database from a YAML manifest",
		Long: `Build a binary database from a YAML manifest describing its records.

Example manifest:
  records:
    - id: 42
      type: text
      value: Hello World
    - id: 7
      type: modification
      insert: {46: Hello, 57: World}
      remove: [43, 44, 45]

Example:
  bindb encode db.yaml -o db.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			buf, err := m.Encode()
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", args[0], err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(buf)
				return err
			}
			if err := os.WriteFile(output, buf, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info("wrote database", "path", output, "records", len(m.Records), "bytes", len(buf))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (stdout when empty)")
	return cmd
}
