package notify

import (
	"strings"
	"time"
)

const (
	ParseModeHTML = "HTML"
	infoEmoji     = "ℹ️"
)

type Data map[string]any

type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Message is a provider-neutral chat message.
type Message struct {
	ChatID    int64
	Text      string
	ParseMode string
	Keyboard  [][]InlineButton
}

type Rendered struct {
	Text     string
	Keyboard [][]InlineButton
	Missing  []string
}

// Render builds the message body for template from data. Required fields
// absent from data are listed in Missing and left out of the text.
func Render(template Template, data Data, location *time.Location) Rendered {
	var b strings.Builder
	b.WriteString(template.Icon + " <b>" + EscapeText(template.Title) + "</b>\n\n")

	var missing []string
	for _, field := range template.Fields {
		value, present := data[field.Key]
		if !present || value == nil || stringValue(value) == "" {
			if field.Required {
				missing = append(missing, field.Key)
			}
			continue
		}
		b.WriteString(infoEmoji + " <b>" + EscapeText(field.Label) + ":</b> " + formatValue(field.Format, value, location) + "\n")
	}

	if template.Footer != "" {
		b.WriteString("\n" + template.Footer)
	}

	rendered := Rendered{
		Text:    Truncate(b.String()),
		Missing: missing,
	}

	var row []InlineButton
	for _, button := range template.Buttons {
		if button.Condition != nil && !button.Condition(data) {
			continue
		}
		row = append(row, InlineButton{
			Text:         button.Text,
			CallbackData: ReplaceVariables(button.CallbackData, data),
		})
	}
	if len(row) > 0 {
		rendered.Keyboard = [][]InlineButton{row}
	}

	return rendered
}

func formatValue(format Format, value any, location *time.Location) string {
	switch format {
	case CurrencyFormat:
		return FormatCurrency(value)
	case DateTimeFormat:
		return FormatDateTime(value, location)
	case PhoneFormat:
		return FormatPhone(stringValue(value))
	default:
		return EscapeText(stringValue(value))
	}
}
