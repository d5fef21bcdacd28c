// Package ui 提供终端表单：填充模板与编辑文档元数据两个标签页。
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allanpk716/docform/internal/app"
	docerr "github.com/allanpk716/docform/internal/errors"
	"github.com/allanpk716/docform/internal/matcher"
	"github.com/allanpk716/docform/internal/metadata"
)

type tab int

const (
	tabFill tab = iota
	tabMeta
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Model 表单界面的 bubbletea 模型
type Model struct {
	ctx    context.Context
	ctrl   *app.Controller
	active tab
	width  int

	// 填充页：0 为模板路径，1..n 为占位符取值，n+1 为输出路径
	templateInput textinput.Model
	valueInputs   []textinput.Model
	outputInput   textinput.Model
	fillFocus     int
	confirming    bool

	// 元数据页：0 为文档路径，1..4 为字段
	targetInput textinput.Model
	metaInputs  []textinput.Model
	metaFocus   int

	status     string
	statusKind statusKind
}

func newInput(placeholder string, width int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.Width = width
	return input
}

// NewModel 创建表单模型
func NewModel(ctx context.Context, ctrl *app.Controller) Model {
	m := Model{
		ctx:           ctx,
		ctrl:          ctrl,
		templateInput: newInput("template.docx", 60),
		outputInput:   newInput("输出路径", 60),
		targetInput:   newInput("document.docx / document.pdf", 60),
	}
	for _, f := range metadata.Fields {
		m.metaInputs = append(m.metaInputs, newInput(f.Key, 60))
	}
	m.templateInput.Focus()
	m.status = "输入模板路径后按 Enter 检测占位符"
	return m
}

// Init 实现 tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update 实现 tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" || msg.String() == "Y" {
				m.fill()
			} else {
				m.setStatus(statusInfo, "已取消生成")
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+t":
			m.switchTab()
			return m, nil
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "enter":
			m.submitField()
			return m, nil
		case "ctrl+s":
			if m.active == tabFill {
				m.requestFill()
			} else {
				m.saveMetadata()
			}
			return m, nil
		case "ctrl+d":
			if m.active == tabMeta {
				m.clearMetadata()
			}
			return m, nil
		}
	}

	input := m.focusedInput()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m *Model) inputs() []*textinput.Model {
	if m.active == tabMeta {
		inputs := []*textinput.Model{&m.targetInput}
		for i := range m.metaInputs {
			inputs = append(inputs, &m.metaInputs[i])
		}
		return inputs
	}

	inputs := []*textinput.Model{&m.templateInput}
	for i := range m.valueInputs {
		inputs = append(inputs, &m.valueInputs[i])
	}
	if len(m.valueInputs) > 0 || m.ctrl.TemplatePath() != "" {
		inputs = append(inputs, &m.outputInput)
	}
	return inputs
}

func (m *Model) focusIndex() *int {
	if m.active == tabMeta {
		return &m.metaFocus
	}
	return &m.fillFocus
}

func (m *Model) focusedInput() *textinput.Model {
	inputs := m.inputs()
	idx := m.focusIndex()
	if *idx >= len(inputs) {
		*idx = len(inputs) - 1
	}
	return inputs[*idx]
}

func (m *Model) setFocus(i int) {
	inputs := m.inputs()
	i = (i + len(inputs)) % len(inputs)
	for j, input := range inputs {
		if j == i {
			input.Focus()
		} else {
			input.Blur()
		}
	}
	*m.focusIndex() = i
}

func (m *Model) moveFocus(delta int) {
	m.setFocus(*m.focusIndex() + delta)
}

func (m *Model) switchTab() {
	for _, input := range m.inputs() {
		input.Blur()
	}
	if m.active == tabFill {
		m.active = tabMeta
		m.setStatus(statusInfo, "输入文档路径后按 Enter 读取元数据")
	} else {
		m.active = tabFill
		m.setStatus(statusInfo, "输入模板路径后按 Enter 检测占位符")
	}
	m.setFocus(*m.focusIndex())
}

func (m *Model) submitField() {
	if *m.focusIndex() != 0 {
		m.moveFocus(1)
		return
	}
	if m.active == tabFill {
		m.loadTemplate()
	} else {
		m.loadTarget()
	}
}

func (m *Model) setStatus(kind statusKind, format string, args ...any) {
	m.statusKind = kind
	m.status = fmt.Sprintf(format, args...)
}

func (m *Model) setError(err error) {
	m.setStatus(statusError, "%s", docerr.Message(err))
}

func (m *Model) loadTemplate() {
	path := strings.TrimSpace(m.templateInput.Value())
	names, err := m.ctrl.SelectTemplate(m.ctx, path)
	if err != nil {
		m.setError(err)
		return
	}

	m.valueInputs = nil
	for _, name := range names {
		m.valueInputs = append(m.valueInputs, newInput(matcher.FormatPlaceholder(name), 40))
	}
	m.outputInput.SetValue(m.ctrl.DefaultOutputPath())

	if len(names) == 0 {
		m.setStatus(statusWarning, "模板中没有占位符")
		m.setFocus(0)
		return
	}
	m.setStatus(statusInfo, "检测到 %d 个占位符，填写后按 Ctrl+S 生成", len(names))
	m.setFocus(1)
}

func (m *Model) values() map[string]string {
	values := make(map[string]string, len(m.valueInputs))
	for i, name := range m.ctrl.Placeholders() {
		if i < len(m.valueInputs) {
			values[name] = m.valueInputs[i].Value()
		}
	}
	return values
}

func (m *Model) requestFill() {
	if m.ctrl.TemplatePath() == "" {
		m.setError(app.ErrNoTemplate)
		return
	}
	if empty := m.ctrl.EmptyValues(m.values()); len(empty) > 0 {
		m.confirming = true
		m.setStatus(statusWarning, "以下占位符为空: %s。按 y 继续生成，其他键取消", strings.Join(empty, ", "))
		return
	}
	m.fill()
}

func (m *Model) fill() {
	result, err := m.ctrl.Fill(m.ctx, m.values(), strings.TrimSpace(m.outputInput.Value()))
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(statusSuccess, "已生成 %s（改写 %d 个段落）", result.OutputPath, result.ChangedParagraphs)
}

func (m *Model) showRecord(rec metadata.Record) {
	for i, f := range metadata.Fields {
		v, _ := rec.Get(f.Key)
		m.metaInputs[i].SetValue(v)
	}
}

func (m *Model) loadTarget() {
	rec, err := m.ctrl.SelectEditTarget(strings.TrimSpace(m.targetInput.Value()))
	if err != nil {
		m.setError(err)
		return
	}
	m.showRecord(rec)
	m.setStatus(statusInfo, "已读取元数据，编辑后按 Ctrl+S 保存，Ctrl+D 清除")
	m.setFocus(1)
}

func (m *Model) saveMetadata() {
	var rec metadata.Record
	for i, f := range metadata.Fields {
		_ = rec.Set(f.Key, m.metaInputs[i].Value())
	}
	if err := m.ctrl.WriteMetadata(rec); err != nil {
		m.setError(err)
		return
	}
	if saved, err := m.ctrl.ReadMetadata(); err == nil {
		m.showRecord(saved)
	}
	m.setStatus(statusSuccess, "元数据已保存")
}

func (m *Model) clearMetadata() {
	if err := m.ctrl.ClearMetadata(); err != nil {
		m.setError(err)
		return
	}
	m.showRecord(metadata.Record{})
	m.setStatus(statusSuccess, "元数据已清除")
}

// View 实现 tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("docform"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.active == tabFill {
		b.WriteString(StylePanel.Render(m.renderFill()))
	} else {
		b.WriteString(StylePanel.Render(m.renderMeta()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(StyleTextMuted.Render("Tab 切换字段 · Ctrl+T 切换页面 · Ctrl+S 保存/生成 · Esc 退出"))
	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{"填充模板", "文档元数据"}
	var tabs []string
	for i, name := range names {
		if tab(i) == m.active {
			tabs = append(tabs, StyleTabActive.Render(name))
		} else {
			tabs = append(tabs, StyleTabInactive.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderRow(label string, focused bool, input textinput.Model) string {
	style := StyleLabel
	if focused {
		style = StyleLabelFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), input.View())
}

func (m Model) renderFill() string {
	rows := []string{renderRow("模板", m.fillFocus == 0, m.templateInput)}
	names := m.ctrl.Placeholders()
	for i, input := range m.valueInputs {
		rows = append(rows, renderRow(names[i], m.fillFocus == i+1, input))
	}
	if m.ctrl.TemplatePath() != "" {
		rows = append(rows, renderRow("输出", m.fillFocus == len(m.valueInputs)+1, m.outputInput))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderMeta() string {
	rows := []string{renderRow("文档", m.metaFocus == 0, m.targetInput)}
	for i, f := range metadata.Fields {
		rows = append(rows, renderRow(f.Label, m.metaFocus == i+1, m.metaInputs[i]))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStatus() string {
	switch m.statusKind {
	case statusSuccess:
		return StyleSuccess.Render(m.status)
	case statusWarning:
		return StyleWarning.Render(m.status)
	case statusError:
		return StyleError.Render(m.status)
	default:
		return StyleTextMuted.Render(m.status)
	}
}

// Run 启动表单并阻塞到用户退出
func Run(ctx context.Context, ctrl *app.Controller) error {
	p := tea.NewProgram(NewModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
