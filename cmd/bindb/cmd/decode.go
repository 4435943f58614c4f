package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/bindb/pkg/codec"
)

func newDecodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file|->",
		Short: "Decode a binary database to JSON",
		Long: `Decode a binary database and print it as a JSON object keyed by record id.

Examples:
  bindb decode fixtures/db.bin
  bindb decode --key 42 fixtures/db.bin
  cat db.bin | bindb decode -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := cmd.Flags().GetString("key")
			compact, _ := cmd.Flags().GetBool("compact")

			raw, err := a.readInput(cmd, args[0])
			if err != nil {
				return err
			}

			db, err := codec.Decode(raw)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", args[0], err)
			}
			a.logger.Debug("decoded database", "bytes", len(raw), "records", db.Len())

			var out interface{} = db
			if key != "" {
				v, ok := db.Get(key)
				if !ok {
					return fmt.Errorf("key %s not found", key)
				}
				out = v
			}
			return writeJSON(cmd, out, compact)
		},
	}
	cmd.Flags().StringP("key", "k", "", "Print only the value stored under this id")
	cmd.Flags().Bool("compact", false, "Print JSON without indentation")
	return cmd
}

func writeJSON(cmd *cobra.Command, v interface{}, compact bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
