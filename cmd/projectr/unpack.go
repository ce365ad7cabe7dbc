package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjgknight/projectr"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack <container>",
	Short: "Recreate a directory tree from a text container",
	Long: `Parse <container> and write each file block under the output directory.

When a target file already exists the conflict policy decides what happens:
"skip" leaves it untouched (default), "overwrite" replaces it, "fail" stops
the extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnpack,
}

func init() {
	unpackCmd.Flags().StringP("output", "o", ".", "output directory")
	unpackCmd.Flags().String("on-conflict", "skip", "existing-file policy: skip, overwrite, or fail")

	cfg.BindPFlag("on-conflict", unpackCmd.Flags().Lookup("on-conflict"))
}

func runUnpack(cmd *cobra.Command, args []string) error {
	policy, err := parseConflictPolicy(cfg.GetString("on-conflict"))
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("output")

	a, err := projectr.DecodeFile(args[0])
	if err != nil {
		// An archive with zero file blocks is reported, not fatal.
		if errors.Is(err, projectr.ErrEmptyArchive) {
			logger.Warn("container has no file blocks", "container", args[0])
			return nil
		}
		return err
	}

	report, err := a.Extract(outDir, projectr.WithOnConflict(policy), projectr.WithExtractLogger(logger))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d files into %s", report.FilesWritten, outDir)
	if len(report.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d skipped)", len(report.Skipped))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func parseConflictPolicy(s string) (projectr.ConflictPolicy, error) {
	switch s {
	case "", "skip":
		return projectr.ConflictSkip, nil
	case "overwrite":
		return projectr.ConflictOverwrite, nil
	case "fail":
		return projectr.ConflictFail, nil
	default:
		return 0, fmt.Errorf("unknown conflict policy %q (want skip, overwrite, or fail)", s)
	}
}
