package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/mahar/pkg/config"
	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/ui"
)

const (
	defaultRenderWidth  = 100
	defaultRenderHeight = 400
)

var renderCmd = &cobra.Command{
	Use:   "render [path]",
	Short: "Print one page without starting the browser",
	Long: "render draws a single frame of the page at path (default /) and prints\n" +
		"it. The width follows the terminal unless --width is given. Output to a\n" +
		"pipe or file is plain text.",
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Int("width", 0, "frame width (default terminal width)")
	renderCmd.Flags().Int("height", defaultRenderHeight, "frame height")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.StartPath = args[0]
	}
	c, src, err := loadContent(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	w := cmd.OutOrStdout()
	tty := isTerminal(w)
	if width <= 0 {
		width = terminalWidth(w)
	}

	fmt.Fprintln(w, renderFrame(c, cfg, src.Path, width, max(10, height), tty))
	return nil
}

// renderFrame builds a model, sizes it and returns its view. Without a
// terminal the frame is rendered without colour.
func renderFrame(c *model.Content, cfg config.Config, source string, width, height int, tty bool) string {
	opts := ui.Options{Config: cfg, Source: source}
	if !tty {
		opts.GlamourStyle = "notty"
		opts.Renderer = lipgloss.NewRenderer(io.Discard)
	}
	m := ui.NewModel(c, opts)
	defer m.Close()

	tm, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return tm.View()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultRenderWidth
}
