package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rhizome-dev/rhizome/pkg/files"
	"github.com/rhizome-dev/rhizome/pkg/models"
	"github.com/rhizome-dev/rhizome/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rhizome",
	Short: "Terminal tracker for a policy-tree self-discipline method",
	Long: `Rhizome tracks a personal self-discipline methodology as a tree of
policy nodes. Policies nest under one another; a failed policy voids its
sub-policies. The tree is stored as a plain YAML file in your user data
directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := files.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve the data file location: %v\n", err)
			os.Exit(1)
		}

		tree, err := files.Load(path)
		if err != nil {
			// A broken data file must not block startup; start from an
			// empty tree and let the user decide whether to overwrite.
			fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", path, err)
			fmt.Fprintf(os.Stderr, "Starting with an empty tree. Quitting will overwrite the file.\n")
			tree = models.NewTree()
		}

		app := tui.NewApp(tree)
		p := tea.NewProgram(app, tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start the terminal user interface: %v\n", err)
			os.Exit(1)
		}

		finalApp, ok := final.(*tui.App)
		if !ok {
			finalApp = app
		}
		if err := files.Save(path, finalApp.Tree()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to save %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Saved to %s\n", path)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rhizome",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rhizome version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
