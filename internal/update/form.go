package update

import (
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/choirsched/internal/model"
	"github.com/sandeepkv93/choirsched/internal/views"
)

// Text inputs in tab order. The category selector sits before them and the
// description textarea after.
const (
	fieldTitle = iota
	fieldDate
	fieldTime
	fieldTime2
	fieldLocation
	inputCount
)

const (
	focusCategory    = -1
	focusDescription = inputCount
)

// inputLabels double as the validation field names.
var inputLabels = [inputCount]string{"title", "date", "time", "time2", "location"}

// EditForm is the add/edit dialog. It returns a trimmed record and never
// talks to storage itself.
type EditForm struct {
	id          string
	category    model.Category
	inputs      [inputCount]textinput.Model
	description textarea.Model
	focus       int
	errs        map[string]string
	saveErr     string
}

func newEditForm(initial model.Event) EditForm {
	f := EditForm{
		id:       initial.ID,
		category: initial.Category,
		focus:    fieldTitle,
	}
	if !f.category.IsValid() {
		f.category = model.CategoryOther
	}
	values := [inputCount]string{initial.Title, initial.Date, initial.Time, initial.Time2, initial.Location}
	placeholders := [inputCount]string{"Sunday rehearsal", "YYYY-MM-DD", "HH:MM", "HH:MM", ""}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		in.Width = 40
		in.Placeholder = placeholders[i]
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.description = textarea.New()
	f.description.SetWidth(48)
	f.description.SetHeight(4)
	f.description.ShowLineNumbers = false
	f.description.Placeholder = "Notes (markdown)"
	f.description.SetValue(initial.Description)
	f.applyFocus()
	return f
}

// Value is the form content as a normalized record. ID is set only when
// editing.
func (f EditForm) Value() model.Event {
	return model.Event{
		ID:          f.id,
		Title:       f.inputs[fieldTitle].Value(),
		Date:        f.inputs[fieldDate].Value(),
		Category:    f.category,
		Time:        f.inputs[fieldTime].Value(),
		Time2:       f.inputs[fieldTime2].Value(),
		Location:    f.inputs[fieldLocation].Value(),
		Description: f.description.Value(),
	}.Normalized()
}

func (f EditForm) Editing() bool { return f.id != "" }

func (f EditForm) FieldError(name string) string { return f.errs[name] }

// SetErrors shows validation messages under their fields. Any other error
// is shown as a save failure.
func (f *EditForm) SetErrors(err error) {
	f.errs = nil
	f.saveErr = ""
	if err == nil {
		return
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		f.errs = make(map[string]string, len(verr.Errors))
		for _, fe := range verr.Errors {
			if _, ok := f.errs[fe.Field]; !ok {
				f.errs[fe.Field] = fe.Message
			}
		}
		return
	}
	f.saveErr = err.Error()
}

func (f *EditForm) setSaveError(msg string) {
	f.saveErr = msg
}

func (f *EditForm) move(delta int) {
	f.focus += delta
	if f.focus < focusCategory {
		f.focus = focusDescription
	}
	if f.focus > focusDescription {
		f.focus = focusCategory
	}
	f.applyFocus()
}

func (f *EditForm) applyFocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if f.focus == focusDescription {
		f.description.Focus()
	} else {
		f.description.Blur()
	}
}

// Update routes a key to the focused field. Save and cancel are handled by
// the caller.
func (f EditForm) Update(msg tea.KeyMsg) (EditForm, tea.Cmd) {
	// up and down move between lines inside the description.
	inDescription := f.focus == focusDescription
	switch msg.String() {
	case "tab":
		f.move(1)
		return f, nil
	case "shift+tab":
		f.move(-1)
		return f, nil
	case "down":
		if !inDescription {
			f.move(1)
			return f, nil
		}
	case "up":
		if !inDescription {
			f.move(-1)
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case f.focus == focusCategory:
		switch msg.String() {
		case "left", "h":
			f.category = f.category.Next(-1)
		case "right", "l", " ":
			f.category = f.category.Next(1)
		}
	case f.focus == focusDescription:
		f.description, cmd = f.description.Update(msg)
	default:
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return f, cmd
}

func (f EditForm) View(saving bool) string {
	heading := "New event"
	if f.Editing() {
		heading = "Edit event"
	}
	fields := make([]views.FormFieldData, 0, inputCount+1)
	for i := range f.inputs {
		fields = append(fields, views.FormFieldData{
			Label:   inputLabels[i],
			View:    f.inputs[i].View(),
			Error:   f.errs[inputLabels[i]],
			Focused: f.focus == i,
		})
	}
	fields = append(fields, views.FormFieldData{
		Label:   "notes",
		View:    f.description.View(),
		Focused: f.focus == focusDescription,
	})

	cats := make([]views.LegendItem, 0, len(model.Categories))
	for _, c := range model.Categories {
		cats = append(cats, views.LegendItem{Key: string(c), Label: c.Label()})
	}
	saveErr := f.saveErr
	if msg := f.errs["type"]; msg != "" && saveErr == "" {
		saveErr = msg
	}
	return views.RenderForm(views.FormPanelData{
		Heading:    heading,
		Fields:     fields,
		Categories: cats,
		Category:   string(f.category),
		CategoryOn: f.focus == focusCategory,
		Saving:     saving,
		SaveError:  saveErr,
	})
}
