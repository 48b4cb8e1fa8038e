package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"gbdis/internal/disasm"
	"gbdis/internal/gbdis/styles"
	"gbdis/internal/ui/colorize"
)

type viewMode int

const (
	viewListing viewMode = iota
	viewLabels
	viewDetails
)

type labelItem struct {
	addr int
	name string
	line int // index of the label line in the listing
}

func (i labelItem) Title() string       { return fmt.Sprintf("%06x  %s", i.addr, i.name) }
func (i labelItem) Description() string { return "" }
func (i labelItem) FilterValue() string { return fmt.Sprintf("%06x %s", i.addr, i.name) }

// Custom item delegate for the labels list
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(labelItem)
	if !ok {
		return
	}

	indicator := " "
	addrStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if index == m.Index() {
		indicator = ">"
		addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	}
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	fmt.Fprintf(w, " %s  %s  %s", indicator, addrStyle.Render(fmt.Sprintf("%06x", i.addr)), nameStyle.Render(i.name))
}

type model struct {
	cfg      Config
	project  *project
	listing  viewport.Model
	labels   list.Model
	details  viewport.Model
	spinner  spinner.Model
	mode     viewMode
	loading  bool
	err      error
	width    int
	height   int
	lines    []string
	labelCnt int
}

type projectMsg struct {
	project *project
	err     error
}

func loadProjectCmd(cfg Config) tea.Cmd {
	return func() tea.Msg {
		p, err := openProject(cfg)
		return projectMsg{project: p, err: err}
	}
}

// NewModel returns the TUI model for disassembling the ROM named by cfg.
func NewModel(cfg Config) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	details := viewport.New()
	details.SetWidth(80)
	details.SetHeight(24)

	labels := list.New([]list.Item{}, itemDelegate{}, 80, 24)
	labels.SetShowStatusBar(false)
	labels.SetFilteringEnabled(true)
	labels.Title = "Labels"
	labels.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		MarginLeft(2)
	labels.SetShowHelp(true)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return model{
		cfg:     cfg,
		listing: vp,
		labels:  labels,
		details: details,
		spinner: s,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		loadProjectCmd(m.cfg),
		m.spinner.Tick,
	)
}

// listingLines renders the listing one string per line, recording where
// each label sits.
func listingLines(s *disasm.Session, color bool) ([]string, []list.Item) {
	var lines []string
	var items []list.Item
	for _, line := range s.Lines() {
		if line.Kind == disasm.LineLabel {
			items = append(items, labelItem{addr: line.Addr, name: line.Text, line: len(lines)})
		}
		lines = append(lines, strings.ReplaceAll(line.String(), "\t", "    "))
	}
	if color && len(lines) > 0 {
		lines = colorLines(lines)
	}
	return lines, items
}

// colorLines highlights the whole listing in one pass. The plain lines are
// kept if highlighting fails or changes the line count.
func colorLines(lines []string) []string {
	out, err := colorize.Listing(strings.Join(lines, "\n"))
	if err != nil {
		return lines
	}
	colored := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(colored) != len(lines) {
		return lines
	}
	return colored
}

func (m *model) updateLoading() {
	m.listing.SetContent(fmt.Sprintf("\n  %s Disassembling %s...", m.spinner.View(), m.cfg.ROM))
}

func (m *model) updateDetails() {
	if m.project == nil {
		return
	}
	width := m.width
	if width == 0 {
		width = 80
	}
	m.details.SetContent(strings.TrimSuffix(styles.Render(summaryMarkdown(m.project), width-2), "\n"))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case projectMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.listing.SetContent(fmt.Sprintf("\n  error: %v", msg.err))
			return m, nil
		}
		m.project = msg.project
		lines, items := listingLines(m.project.session, !colorize.Disabled())
		m.lines = lines
		m.labelCnt = len(items)
		m.labels.SetItems(items)
		m.labels.Title = fmt.Sprintf("Labels (%d total)", len(items))
		m.listing.SetContent(strings.Join(lines, "\n"))
		m.listing.GotoTop()
		m.updateDetails()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateLoading()
		return m, cmd

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.listing.SetWidth(msg.Width)
			m.listing.SetHeight(msg.Height - 2)
			m.labels.SetWidth(msg.Width)
			m.labels.SetHeight(msg.Height - 2)
			m.details.SetWidth(msg.Width)
			m.details.SetHeight(msg.Height - 2)
			m.updateDetails()
		}

	case tea.KeyMsg:
		// While filtering, the list gets every key except quit
		if m.mode == viewLabels && m.labels.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				return m.quit()
			}
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m.quit()
		case "l":
			m.mode = viewListing
			return m, nil
		case "s":
			if m.labelCnt > 0 {
				m.mode = viewLabels
			}
			return m, nil
		case "d":
			if m.project != nil {
				m.mode = viewDetails
			}
			return m, nil
		case "enter":
			if m.mode == viewLabels {
				if item, ok := m.labels.SelectedItem().(labelItem); ok {
					m.mode = viewListing
					m.listing.SetYOffset(item.line)
				}
			}
			return m, nil
		case "tab":
			if m.project != nil {
				m.mode = (m.mode + 1) % 3
				if m.mode == viewLabels && m.labelCnt == 0 {
					m.mode = viewDetails
				}
			}
			return m, nil
		case "shift+tab":
			if m.project != nil {
				m.mode = (m.mode + 2) % 3
				if m.mode == viewLabels && m.labelCnt == 0 {
					m.mode = viewListing
				}
			}
			return m, nil
		}
	}

	switch m.mode {
	case viewLabels:
		m.labels, cmd = m.labels.Update(msg)
	case viewDetails:
		m.details, cmd = m.details.Update(msg)
	default:
		m.listing, cmd = m.listing.Update(msg)
	}
	return m, cmd
}

func (m model) quit() (tea.Model, tea.Cmd) {
	if m.project != nil {
		m.project.Close()
	}
	return m, tea.Quit
}

func (m model) View() string {
	var content string
	switch m.mode {
	case viewLabels:
		content = m.labels.View()
	case viewDetails:
		content = m.details.View()
	default:
		content = m.listing.View()
	}

	var menu string
	switch m.mode {
	case viewLabels:
		menu = " Enter: jump to label • L: listing • D: details • Tab: cycle • Q: quit "
	case viewDetails:
		menu = " L: listing • S: labels • Tab: cycle • Q: quit "
	default:
		if m.project != nil {
			menu = " S: labels • D: details • Tab: cycle • Q: quit "
		} else {
			menu = " Q: quit "
		}
	}

	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return content + "\n" + menuStyle.Render(menu)
}
