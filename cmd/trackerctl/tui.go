package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/trackerctl/internal/connection"
	"github.com/creamcroissant/trackerctl/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive admin console",
	Long:  "Launch an interactive terminal UI with one tab per admin section.",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().String("section", string(connection.SectionStats), "Section shown at start")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !stdinIsTerminal() {
		return errors.New("tui requires an interactive terminal")
	}

	bridge := tui.NewBridge()
	a, err := newApp(cmd, appOptions{interactive: true, confirm: bridge})
	if err != nil {
		return err
	}
	defer a.Close()

	name, _ := cmd.Flags().GetString("section")
	section, err := connection.ParseSection(name)
	if err != nil {
		return err
	}
	a.state.Show(section)

	model := tui.NewModel(tui.Options{
		Set:       a.set,
		State:     a.state,
		Connector: a.connector,
		Board:     a.board,
		Profile:   a.profile,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	bridge.Attach(p)

	a.logger.Info("tui started", "mode", a.state.Mode().String(), "section", string(section))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
