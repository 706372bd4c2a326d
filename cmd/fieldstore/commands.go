// ABOUTME: Cobra command definitions for the fieldstore CLI
// ABOUTME: fields/get/set/rows subcommands acting as an ordinary client of the persisted object

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2389/fieldstore/internal/config"
	"github.com/2389/fieldstore/internal/persist"
	"github.com/2389/fieldstore/internal/portable"
	"github.com/2389/fieldstore/internal/store"
)

type rootOptions struct {
	ConfigPath string
}

// configPath resolves the config file location.
// Priority: --config flag > FIELDSTORE_CONFIG env var > XDG_CONFIG_HOME/fieldstore/config.yaml
func (o *rootOptions) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	if envPath := os.Getenv("FIELDSTORE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "fieldstore.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "fieldstore", "config.yaml")
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "fieldstore",
		Short:         "Inspect and edit persisted object fields",
		Long:          "A client for objects whose fields are transparently persisted into a SQLite key-value table.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config file")

	cmd.AddCommand(newFieldsCommand(opts))
	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newSetCommand(opts))
	cmd.AddCommand(newRowsCommand(opts))

	return cmd
}

type sqliteProvider struct {
	s *store.SQLiteStore
}

func (p *sqliteProvider) Storage() store.Adapter {
	return p.s
}

// attach loads config, configures logging, opens the store, and binds a
// persisted object the way a hosting runtime would.
func attach(ctx context.Context, opts *rootOptions) (*persist.Object, *store.SQLiteStore, error) {
	cfg, err := config.Load(opts.configPath())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(setupLogger(cfg.Logging))

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	obj := persist.New(ctx, &sqliteProvider{s: s}, cfg.Descriptors(), cfg.Options())
	return obj, s, nil
}

func newFieldsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List declared fields and their persistence eligibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, s, err := attach(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			eligible := make(map[string]bool)
			for _, name := range obj.EligibleFields() {
				eligible[name] = true
			}

			green := color.New(color.FgGreen)
			gray := color.New(color.FgHiBlack)
			for _, name := range obj.FieldNames() {
				if eligible[name] {
					green.Println(name)
				} else {
					gray.Printf("%s (not persisted)\n", name)
				}
			}
			return nil
		},
	}
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <field>",
		Short: "Read a field, hydrating it from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, s, err := attach(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := obj.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(renderValue(v))
			return nil
		},
	}
}

func newSetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Write a field through to the store",
		Long:  "The value is parsed as JSON; anything that does not parse is stored as a plain string.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, s, err := attach(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := obj.Set(cmd.Context(), args[0], parseValue(args[1])); err != nil {
				return err
			}

			color.New(color.FgGreen).Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newRowsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rows",
		Short: "Dump the backing key-value table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Attachment ensures the schema exists before we read it.
			_, s, err := attach(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			rows, err := s.ListRows(cmd.Context())
			if err != nil {
				return err
			}

			cyan := color.New(color.FgCyan)
			gray := color.New(color.FgHiBlack)
			for _, row := range rows {
				cyan.Print(row.Key)
				fmt.Printf(" = %s ", row.Value)
				gray.Printf("(updated %s)\n", row.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// parseValue interprets a CLI argument as JSON, falling back to a raw string.
func parseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}

// renderValue prints a field value in its canonical text form where possible.
func renderValue(v any) string {
	encoded, err := portable.Encode(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return encoded
}
