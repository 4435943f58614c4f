package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

func newPutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put <file|->",
		Short: "Store a binary database",
		Long: `Validate a binary database and keep it in the local store.

Example:
  bindb put db.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.readInput(cmd, args[0])
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, db, err := s.Put(raw)
			if err != nil {
				return err
			}
			cmd.Printf("Stored %s (%d records, %d bytes)\n", id, db.Len(), len(raw))
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored database as JSON",
		Long: `Decode a stored database and print it as JSON.

Example:
  bindb get 2LlvJ7lE1lh6mQ2W9bY6PGW1Vz7
  bindb get --key 42 2LlvJ7lE1lh6mQ2W9bY6PGW1Vz7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := cmd.Flags().GetString("key")

			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			db, err := s.Load(id)
			if err != nil {
				return err
			}
			if key == "" {
				return writeJSON(cmd, db, false)
			}
			v, ok := db.Get(key)
			if !ok {
				return fmt.Errorf("key %s not found", key)
			}
			return writeJSON(cmd, v, false)
		},
	}
	cmd.Flags().StringP("key", "k", "", "Print only the value stored under this id")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ids, err := s.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				cmd.Printf("%s\t%s\n", id, id.Time().UTC().Format("2006-01-02T15:04:05Z"))
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ksuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(id); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", id)
			return nil
		},
	}
}
