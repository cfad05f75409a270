package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nwb/nwbio"
	"github.com/robert-malhotra/go-nwb/storage/memstore"
)

func newRootCommand() *cobra.Command {
	var outFlag string
	var debugFlag bool
	var verboseFlag bool

	rootCmd := &cobra.Command{
		Use:           "nwbgen <manifest.toml>",
		Short:         "Render an NWB session manifest and print the resulting hierarchy",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], outFlag, debugFlag, verboseFlag)
		},
	}

	rootCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file name (default: manifest name with .nwb)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Dump the container graph before rendering")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log each object as it is written")

	return rootCmd
}

func run(cmd *cobra.Command, manifestPath, out string, debug, verbose bool) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	if out == "" {
		base := filepath.Base(manifestPath)
		out = strings.TrimSuffix(base, filepath.Ext(base)) + ".nwb"
	}

	f, err := buildFile(m, out)
	if err != nil {
		return fmt.Errorf("building session: %w", err)
	}

	if debug {
		fmt.Fprint(cmd.ErrOrStderr(), spew.Sdump(f))
	}

	var opts []nwbio.WriterOption
	if verbose {
		opts = append(opts, nwbio.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	store := memstore.New()
	if err := nwbio.Write(f, out, store, opts...); err != nil {
		return err
	}

	root, err := nwbio.DefaultRenderer().Render(f)
	if err != nil {
		return err
	}
	table, err := renderTree(root)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
