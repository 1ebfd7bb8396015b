package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/cli/model"
	"github.com/foliolabs/folio/internal/domain/entity"
)

var statesJSON bool

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Manage remembered view positions",
	Long: `View and manage remembered per-document view positions.

Folio stores the page, zoom and view modes for each document it opens,
keyed by a content fingerprint. Run without arguments to open the
interactive browser.`,
	RunE: runStates,
}

func init() {
	rootCmd.AddCommand(statesCmd)
}

func runStates(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := app.OpenRepositories(); err != nil {
		return err
	}

	m := model.NewStatesModel(app.Ctx(), app.Theme, app.ListViewsUC, app.PurgeViewsUC)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// states list
var statesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remembered view positions",
	RunE:  runStatesList,
}

func init() {
	statesCmd.AddCommand(statesListCmd)
	statesListCmd.Flags().BoolVar(&statesJSON, "json", false, "output as JSON")
}

func runStatesList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := app.OpenRepositories(); err != nil {
		return err
	}

	states, err := app.ListViewsUC.Execute(app.Ctx())
	if err != nil {
		return fmt.Errorf("list view states: %w", err)
	}

	if statesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(states)
	}
	return outputStatesTable(states)
}

func outputStatesTable(states []*entity.ViewState) error {
	if len(states) == 0 {
		fmt.Println("No stored view positions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FINGERPRINT\tPAGE\tZOOM\tUPDATED")
	for _, s := range states {
		zoom := s.Zoom
		if zoom == "" {
			zoom = "auto"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			s.Fingerprint, s.Page, zoom, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// states purge
var statesPurgeAll bool

var statesPurgeCmd = &cobra.Command{
	Use:   "purge [fingerprint]",
	Short: "Remove stored view positions",
	Long: `Remove the stored view position for one document, or every stored
position with --all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatesPurge,
}

func init() {
	statesCmd.AddCommand(statesPurgeCmd)
	statesPurgeCmd.Flags().BoolVar(&statesPurgeAll, "all", false, "remove every stored position")
}

func runStatesPurge(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := app.OpenRepositories(); err != nil {
		return err
	}

	if statesPurgeAll {
		removed, err := app.PurgeViewsUC.All(app.Ctx())
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d stored position(s).\n", removed)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a fingerprint or use --all")
	}
	if err := app.PurgeViewsUC.One(app.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed stored position for %s.\n", args[0])
	return nil
}
