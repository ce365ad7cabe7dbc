package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sjgknight/projectr"
)

var (
	tocTitleStyle = lipgloss.NewStyle().Bold(true)
	tocMetaStyle  = lipgloss.NewStyle().Faint(true)
	tocPathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var tocCmd = &cobra.Command{
	Use:   "toc <container>",
	Short: "List the table of contents of a container without extracting",
	Args:  cobra.ExactArgs(1),
	RunE:  runToc,
}

func runToc(cmd *cobra.Command, args []string) error {
	a, err := projectr.DecodeFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.Header.Title != "" {
		fmt.Fprintln(out, tocTitleStyle.Render(a.Header.Title))
	}
	if a.Header.Generated != "" || a.Header.SourceRoot != "" {
		fmt.Fprintln(out, tocMetaStyle.Render(
			fmt.Sprintf("generated %s from %s", a.Header.Generated, a.Header.SourceRoot)))
	}
	var total int64
	for i, f := range a.Files {
		fmt.Fprintf(out, "%3d. %s (%d bytes, %d lines)\n",
			i+1, tocPathStyle.Render(f.Path), f.SizeBytes, len(f.Lines))
		total += f.SizeBytes
	}
	fmt.Fprintf(out, "%d files, %d bytes\n", len(a.Files), total)
	return nil
}
