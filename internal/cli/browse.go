package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgext/pkg/svg"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icon discovery
// =============================================================================

// IconInfo describes one icon file available to bare names.
type IconInfo struct {
	Name    string
	Path    string
	Size    int64
	Valid   bool
	ModTime time.Time
}

// listIcons collects the .svg files of dirs. Directories are searched in
// order and the first file for a name wins, matching bare name resolution.
func listIcons(dirs []string) ([]IconInfo, error) {
	seen := make(map[string]bool)
	var icons []IconInfo
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
				continue
			}
			name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			if seen[name] {
				continue
			}
			seen[name] = true

			info := IconInfo{Name: name, Path: filepath.Join(dir, e.Name())}
			if fi, err := e.Info(); err == nil {
				info.Size = fi.Size()
				info.ModTime = fi.ModTime()
			}
			if data, err := os.ReadFile(info.Path); err == nil {
				info.Valid = svg.Valid(string(data))
			}
			icons = append(icons, info)
		}
	}
	sort.Slice(icons, func(i, j int) bool { return icons[i].Name < icons[j].Name })
	return icons, nil
}

// snippets returns the template calls for an icon.
func snippets(name string) []string {
	return []string{
		fmt.Sprintf(`{{ svg %q }}`, name),
		fmt.Sprintf(`{{ svgSprite %q }}`, name),
		fmt.Sprintf(`{{ sprite %q }}`, name),
	}
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command for picking an icon interactively.
func (c *CLI) browseCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick an icon interactively and print its template snippets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := c.loadSettings()
			if err != nil {
				return err
			}
			icons, err := listIcons(c.newLocator().Expand(settings.Path))
			if err != nil {
				return err
			}
			if len(icons) == 0 {
				printWarning("No icons found under %s", settings.Path)
				return nil
			}

			w := cmd.OutOrStdout()
			if list {
				for _, ic := range icons {
					fmt.Fprintln(w, ic.Name)
				}
				return nil
			}

			final, err := tea.NewProgram(NewIconListModel(icons), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			m, ok := final.(IconListModel)
			if !ok || m.Selected == nil {
				return nil
			}
			printSuccess("Selected %s", StyleHighlight.Render(m.Selected.Name))
			for _, s := range snippets(m.Selected.Name) {
				fmt.Fprintln(w, s)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print icon names without the interactive picker")

	return cmd
}

// =============================================================================
// IconListModel - Interactive icon selection
// =============================================================================

// IconListModel is the bubbletea model for interactive icon selection.
type IconListModel struct {
	Icons    []IconInfo
	Cursor   int
	Selected *IconInfo
	Height   int
	Offset   int
}

// NewIconListModel creates a new icon list model.
func NewIconListModel(icons []IconInfo) IconListModel {
	return IconListModel{
		Icons:  icons,
		Height: 15,
	}
}

func (m IconListModel) Init() tea.Cmd {
	return nil
}

// move shifts the cursor by delta and keeps it inside the visible window.
func (m *IconListModel) move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Icons)-1, 0))
	switch {
	case m.Cursor < m.Offset:
		m.Offset = m.Cursor
	case m.Cursor >= m.Offset+m.Height:
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m IconListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter":
			// Icons without a closing </svg> would render as nothing.
			if len(m.Icons) == 0 || !m.Icons[m.Cursor].Valid {
				return m, nil
			}
			icon := m.Icons[m.Cursor]
			m.Selected = &icon
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m IconListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select Icon") + "\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit") + "\n\n")

	end := min(m.Offset+m.Height, len(m.Icons))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		ic := m.Icons[i]
		marker, valid := "  ", "✓"
		if i == m.Cursor {
			marker = "▸ "
		}
		if !ic.Valid {
			valid = "—"
		}
		rows = append(rows, []string{marker, ic.Name, formatSize(ic.Size), valid, formatRelativeTime(ic.ModTime)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Icon", "Size", "SVG", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return m.cellStyle(m.Offset+row, col, row == -1)
		})

	b.WriteString(t.Render() + "\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  ", m.Cursor+1, len(m.Icons))))
	b.WriteString(m.preview())
	return b.String()
}

func (m IconListModel) cellStyle(idx, col int, header bool) lipgloss.Style {
	style := lipgloss.NewStyle()
	if header {
		return style.Foreground(colorGray).Bold(true)
	}
	if idx >= len(m.Icons) {
		return style
	}
	current := idx == m.Cursor
	switch {
	case !m.Icons[idx].Valid:
		return style.Foreground(colorDim).Bold(current)
	case col < 2 && current:
		return style.Foreground(colorGreen).Bold(true)
	case col >= 2 && current:
		return style.Foreground(colorGray).Bold(true)
	case col >= 2:
		return style.Foreground(colorDim)
	}
	return style
}

// preview shows the inline snippet for the icon under the cursor.
func (m IconListModel) preview() string {
	if len(m.Icons) == 0 {
		return ""
	}
	ic := m.Icons[m.Cursor]
	if !ic.Valid {
		return StyleWarning.Render("no </svg> found, renders as nothing")
	}
	return StyleHighlight.Render(snippets(ic.Name)[0])
}

// =============================================================================
// Helpers
// =============================================================================

func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
