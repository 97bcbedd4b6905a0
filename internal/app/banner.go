package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	startStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	closedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func printStart(w io.Writer, name string) {
	fmt.Fprintln(w, startStyle.Render(fmt.Sprintf("🚀 %s を起動しています...", name)))
}

func printClosed(w io.Writer) {
	fmt.Fprintln(w, closedStyle.Render("👋 アプリケーションを終了しました"))
}

// PrintError は起動失敗のメッセージを表示する
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("❌ 起動に失敗しました: %v", err)))
}
