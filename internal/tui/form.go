package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/wesen/graphwalk/pkg/generator"
)

// Form field order.
const (
	fieldNodes = iota
	fieldMinDegree
	fieldMaxDegree
	fieldMoat
	fieldCrossings
	fieldDirected
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldNodes:     "Nodes",
	fieldMinDegree: "Min degree",
	fieldMaxDegree: "Max degree",
	fieldMoat:      "Moat",
	fieldCrossings: "Max crossings",
	fieldDirected:  "Directed",
}

var fieldHints = [fieldCount]string{
	fieldMinDegree: "count, fraction of N, or inf",
	fieldMaxDegree: "count, fraction of N, or inf",
	fieldCrossings: "per edge; inf for no limit",
	fieldDirected:  "true or false",
}

// paramForm edits generation parameters before a rebuild.
type paramForm struct {
	open   bool
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

// openForm fills the inputs from p and focuses the first one.
func openForm(p generator.Params) (paramForm, tea.Cmd) {
	f := paramForm{open: true}
	values := [fieldCount]string{
		fieldNodes:     strconv.Itoa(p.NodeCount),
		fieldMinDegree: p.MinDegree.String(),
		fieldMaxDegree: p.MaxDegree.String(),
		fieldMoat:      strconv.Itoa(p.Moat),
		fieldCrossings: crossingsString(p.MaxCrossings),
		fieldDirected:  strconv.FormatBool(p.Directed),
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 12
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	cmd := f.inputs[0].Focus()
	return f, cmd
}

func crossingsString(n int) string {
	if n == generator.Unlimited {
		return "inf"
	}
	return strconv.Itoa(n)
}

// move shifts focus by delta, wrapping around.
func (f paramForm) move(delta int) (paramForm, tea.Cmd) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	cmd := f.inputs[f.focus].Focus()
	return f, cmd
}

// update forwards msg to the focused input.
func (f paramForm) update(msg tea.Msg) (paramForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

var errFieldEmpty = errors.New("value required")

// params parses the inputs over base, so settings the form does not show
// (spread, radius) carry over.
func (f paramForm) params(base generator.Params) (generator.Params, error) {
	p := base
	val := func(i int) (string, error) {
		s := strings.TrimSpace(f.inputs[i].Value())
		if s == "" {
			return "", fmt.Errorf("%s: %w", fieldLabels[i], errFieldEmpty)
		}
		return s, nil
	}
	atoi := func(i int) (int, error) {
		s, err := val(i)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", fieldLabels[i], err)
		}
		return n, nil
	}
	degree := func(i int, d *generator.Degree) error {
		s, err := val(i)
		if err != nil {
			return err
		}
		if err := d.Set(s); err != nil {
			return fmt.Errorf("%s: %w", fieldLabels[i], err)
		}
		return nil
	}

	var err error
	if p.NodeCount, err = atoi(fieldNodes); err != nil {
		return base, err
	}
	if err := degree(fieldMinDegree, &p.MinDegree); err != nil {
		return base, err
	}
	if err := degree(fieldMaxDegree, &p.MaxDegree); err != nil {
		return base, err
	}
	if p.Moat, err = atoi(fieldMoat); err != nil {
		return base, err
	}
	if s, _ := val(fieldCrossings); s == "inf" || s == "unlimited" {
		p.MaxCrossings = generator.Unlimited
	} else if p.MaxCrossings, err = atoi(fieldCrossings); err != nil {
		return base, err
	}
	s, err := val(fieldDirected)
	if err != nil {
		return base, err
	}
	if p.Directed, err = strconv.ParseBool(s); err != nil {
		return base, fmt.Errorf("%s: %w", fieldLabels[fieldDirected], err)
	}

	if err := p.Validate(); err != nil {
		return base, err
	}
	return p, nil
}

// view renders the form box.
func (f paramForm) view() string {
	lines := []string{formTitleStyle.Render("NEW GRAPH"), ""}
	for i, in := range f.inputs {
		marker := "  "
		if i == f.focus {
			marker = "▸ "
		}
		label := formLabelStyle.Render(fmt.Sprintf("%s%-14s", marker, fieldLabels[i]))
		line := label + " " + in.View()
		if i == f.focus && fieldHints[i] != "" {
			line += "  " + formHintStyle.Render(fieldHints[i])
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	if f.err != "" {
		lines = append(lines, formErrStyle.Render(f.err), "")
	}
	lines = append(lines, formHintStyle.Render("[tab] next  [enter] generate  [esc] cancel"))
	return formBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
