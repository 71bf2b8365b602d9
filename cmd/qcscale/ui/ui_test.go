package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Blaco/qc-scale-tool/internal/qcfile"
	"github.com/Blaco/qc-scale-tool/internal/scale"
	"github.com/Blaco/qc-scale-tool/internal/vrdfile"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testStyles() Styles {
	return NewStyles(DarkTheme())
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{}
}

func TestPickerModel_SelectSecond(t *testing.T) {
	m := NewPicker([]string{"archer.qc", "knight.qc"}, testStyles())

	next, _ := m.Update(keyMsg("down"))
	next, _ = next.(PickerModel).Update(keyMsg("enter"))

	picked := next.(PickerModel)
	assert.Equal(t, "knight.qc", picked.Choice)
	assert.False(t, picked.Canceled)
}

func TestPickerModel_Cancel(t *testing.T) {
	m := NewPicker([]string{"archer.qc"}, testStyles())
	next, _ := m.Update(keyMsg("esc"))
	assert.True(t, next.(PickerModel).Canceled)
}

func TestPromptModel_RepromptsUntilValid(t *testing.T) {
	calls := 0
	m := NewPrompt("New scale?", func(in string) error {
		calls++
		if in != "2" {
			return assert.AnError
		}
		return nil
	}, testStyles())

	next, _ := m.Update(keyMsg("x"))
	next, _ = next.(PromptModel).Update(keyMsg("enter"))
	p := next.(PromptModel)
	assert.Empty(t, p.Value)
	assert.NotEmpty(t, p.errMsg)

	next, _ = p.Update(keyMsg("2"))
	next, _ = next.(PromptModel).Update(keyMsg("enter"))
	p = next.(PromptModel)
	assert.Equal(t, "2", p.Value)
	assert.Equal(t, 2, calls)

	// The rejected value was cleared, not left for editing.
	assert.NotContains(t, p.View(), "x")
}

func TestPromptModel_Cancel(t *testing.T) {
	m := NewPrompt("New scale?", nil, testStyles())
	next, _ := m.Update(keyMsg("esc"))
	assert.True(t, next.(PromptModel).Canceled)
}

func TestTableRender(t *testing.T) {
	tbl := Table{Title: "changes", Headers: []string{"line", "value"}}
	tbl.AddRow("3", "eyeball lefteye")
	out := tbl.Render(testStyles())
	assert.Contains(t, out, "changes")
	assert.Contains(t, out, "eyeball lefteye")
}

func TestRenderQCReport(t *testing.T) {
	report := &qcfile.Report{
		DirectiveInserted: true,
		Eyeballs: []qcfile.EyeballChange{{
			Line: 3, Name: "lefteye",
			Before: "eyeball lefteye eyes 1.0 2.0 3.0 eyemat 1.000 7.5 irismat 0.500",
			After:  "eyeball lefteye eyes 2.000 4.000 6.000 eyemat 2.000 7.5 irismat 1.000",
		}},
	}
	f := scale.Factors{Previous: 1, New: 2, Relative: 2}
	out := RenderQCReport(report, f, testStyles())
	require.Contains(t, out, "inserted $scale 2")
	assert.Contains(t, out, "lefteye")
	assert.True(t, strings.Contains(out, "1 eyeball line(s) rescaled"))
}

func TestRenderVRDReport(t *testing.T) {
	out := RenderVRDReport(&vrdfile.Report{
		FirstRun:     true,
		BasePosCount: 2, TriggerCount: 3, TriggerNonZero: 3,
		AppliedScale: 2,
	}, testStyles())
	assert.Contains(t, out, "first run")
	assert.Contains(t, out, "2 rest position(s)")

	out = RenderVRDReport(&vrdfile.Report{AllTriggersZero: true, TriggerCount: 2, NoBasePos: true}, testStyles())
	assert.Contains(t, out, "nothing to scale")
	assert.Contains(t, out, "helper-offset file?")
}
