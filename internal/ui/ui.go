package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/mdv/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Output receives every message. It defaults to stderr so stdout stays
// free for diff and dump output.
var Output io.Writer = os.Stderr

func printStyled(style lipgloss.Style, format string, a ...interface{}) {
	fmt.Fprintln(Output, style.Render(fmt.Sprintf(format, a...)))
}

func Header(format string, a ...interface{}) {
	printStyled(headerStyle, format, a...)
}

func Info(format string, a ...interface{}) {
	printStyled(infoStyle, format, a...)
}

func Success(format string, a ...interface{}) {
	printStyled(successStyle, format, a...)
}

func Warning(format string, a ...interface{}) {
	printStyled(warningStyle, format, a...)
}

func Error(format string, a ...interface{}) {
	printStyled(errorStyle, format, a...)
}

func Path(format string, a ...interface{}) {
	printStyled(pathStyle, "  "+format, a...)
}

// --- Summaries ---

func PrintSummary(s model.Summary) {
	if s.Message != "" {
		Header("%s", s.Message)
	}
	if len(s.Files) == 0 {
		Info("No files to show.")
		return
	}

	Success("Showed %d file(s):", len(s.Files))
	for _, f := range s.Files {
		Path("- %s", f)
	}
	if len(s.Large) > 0 {
		Warning("Large diffs (partially shown):")
		for _, f := range s.Large {
			Path("- %s", f)
		}
	}
	if len(s.Truncated) > 0 {
		Warning("Truncated for performance:")
		for _, f := range s.Truncated {
			Path("- %s", f)
		}
	}
}
