package components

import (
	"strings"
)

// DefaultLabelWidth is the label column width used by Render.
const DefaultLabelWidth = 16

// Input is a single-line text input.
type Input struct {
	label       string
	value       string
	placeholder string
	width       int
	focused     bool
	cursorPos   int
	maxLength   int
	required    bool
	mask        rune
	err         string
	styles      Styles
}

// NewInput creates a new input field.
func NewInput(label string) *Input {
	return &Input{
		label:     label,
		width:     20,
		maxLength: 100,
		styles:    DefaultStyles(),
	}
}

// SetValue sets the input value.
func (i *Input) SetValue(v string) *Input {
	i.value = v
	i.cursorPos = len(v)
	return i
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// SetMask renders every character as r, for passphrases. Zero disables it.
func (i *Input) SetMask(r rune) *Input {
	i.mask = r
	return i
}

// SetStyles sets the styles the input renders with.
func (i *Input) SetStyles(s Styles) *Input {
	i.styles = s
	return i
}

// SetError sets an error message.
func (i *Input) SetError(e string) *Input {
	i.err = e
	return i
}

// Error returns the current error message.
func (i *Input) Error() string {
	return i.err
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	if focused && i.cursorPos > len(i.value) {
		i.cursorPos = len(i.value)
	}
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current value.
func (i *Input) Value() string {
	return i.value
}

// Label returns the field label.
func (i *Input) Label() string {
	return i.label
}

// HandleKey handles a key press.
func (i *Input) HandleKey(key string) {
	if !i.focused {
		return
	}

	switch key {
	case "backspace":
		if len(i.value) > 0 && i.cursorPos > 0 {
			i.value = i.value[:i.cursorPos-1] + i.value[i.cursorPos:]
			i.cursorPos--
		}
	case "delete":
		if i.cursorPos < len(i.value) {
			i.value = i.value[:i.cursorPos] + i.value[i.cursorPos+1:]
		}
	case "left":
		if i.cursorPos > 0 {
			i.cursorPos--
		}
	case "right":
		if i.cursorPos < len(i.value) {
			i.cursorPos++
		}
	case "home", "ctrl+a":
		i.cursorPos = 0
	case "end", "ctrl+e":
		i.cursorPos = len(i.value)
	case "ctrl+u":
		i.value = i.value[i.cursorPos:]
		i.cursorPos = 0
	default:
		if key == "space" {
			key = " "
		}
		if len(key) == 1 && len(i.value) < i.maxLength {
			i.value = i.value[:i.cursorPos] + key + i.value[i.cursorPos:]
			i.cursorPos++
		}
	}
}

// Validate checks the required flag and records the error message.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(i.value) == "" {
		i.err = "Required"
		return false
	}
	i.err = ""
	return true
}

// Render renders the input with the default label width.
func (i *Input) Render() string {
	return i.RenderWithLabelWidth(DefaultLabelWidth)
}

// RenderWithLabelWidth renders the input with a label column of the given
// width. A width of 0 omits the label.
func (i *Input) RenderWithLabelWidth(labelWidth int) string {
	value := i.value
	if i.mask != 0 {
		value = strings.Repeat(string(i.mask), len(i.value))
	}

	var display string
	switch {
	case i.value == "" && i.placeholder != "" && !i.focused:
		display = i.styles.Muted.Render(i.placeholder)
	case i.focused:
		cursor := i.cursorPos
		if cursor > len(value) {
			cursor = len(value)
		}
		display = i.styles.Accent.Render(value[:cursor] + "_" + value[cursor:])
	default:
		display = i.styles.Value.Render(value)
	}

	displayLen := len(value)
	if i.value == "" && i.placeholder != "" && !i.focused {
		displayLen = len(i.placeholder)
	}
	if i.focused {
		displayLen++
	}
	if displayLen < i.width {
		display += strings.Repeat(" ", i.width-displayLen)
	}

	result := display
	if labelWidth > 0 {
		label := i.label
		if i.required {
			label += "*"
		}
		label += ":"
		result = i.styles.Label.Width(labelWidth).Render(label) + " " + display
	}

	if i.err != "" {
		result += " " + i.styles.Error.Render(i.err)
	}

	return result
}

// FormField is anything a FieldSet can move focus between.
type FormField interface {
	Focus(bool)
	IsFocused() bool
	HandleKey(string)
}

var _ FormField = (*Input)(nil)

// FieldSet tracks focus across an ordered list of fields.
type FieldSet struct {
	fields     []FormField
	focusIndex int
}

// NewFieldSet focuses the first field.
func NewFieldSet(fields ...FormField) *FieldSet {
	fs := &FieldSet{fields: fields}
	if len(fields) > 0 {
		fields[0].Focus(true)
	}
	return fs
}

// Len returns the number of fields.
func (fs *FieldSet) Len() int {
	return len(fs.fields)
}

// Index returns the focused field index.
func (fs *FieldSet) Index() int {
	return fs.focusIndex
}

// Focused returns the focused field, or nil for an empty set.
func (fs *FieldSet) Focused() FormField {
	if len(fs.fields) == 0 {
		return nil
	}
	return fs.fields[fs.focusIndex]
}

// IsLast reports whether the last field has focus.
func (fs *FieldSet) IsLast() bool {
	return fs.focusIndex == len(fs.fields)-1
}

// FocusIndex moves focus to field i.
func (fs *FieldSet) FocusIndex(i int) {
	if i < 0 || i >= len(fs.fields) {
		return
	}
	fs.fields[fs.focusIndex].Focus(false)
	fs.focusIndex = i
	fs.fields[i].Focus(true)
}

// FocusField moves focus to f if it belongs to the set.
func (fs *FieldSet) FocusField(f FormField) {
	for i, field := range fs.fields {
		if field == f {
			fs.FocusIndex(i)
			return
		}
	}
}

// Next moves focus forward, wrapping around.
func (fs *FieldSet) Next() {
	if len(fs.fields) == 0 {
		return
	}
	fs.FocusIndex((fs.focusIndex + 1) % len(fs.fields))
}

// Prev moves focus backward, wrapping around.
func (fs *FieldSet) Prev() {
	if len(fs.fields) == 0 {
		return
	}
	i := fs.focusIndex - 1
	if i < 0 {
		i = len(fs.fields) - 1
	}
	fs.FocusIndex(i)
}

// HandleKey forwards key to the focused field.
func (fs *FieldSet) HandleKey(key string) {
	if f := fs.Focused(); f != nil {
		f.HandleKey(key)
	}
}
