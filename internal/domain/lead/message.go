package lead

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yanqian/faqdesk/internal/domain/notify"
	"github.com/yanqian/faqdesk/pkg/util"
)

const notSpecified = "Не указано"

var (
	// Characters that open inline Markdown constructs anywhere in a line.
	inlineMarkup = strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		`*`, `\*`,
		`_`, `\_`,
		`[`, `\[`,
		`]`, `\]`,
		`~`, `\~`,
		`<`, `\<`,
		`&`, `\&`,
	)
	orderedMarker = regexp.MustCompile(`^(\d+)([.)])`)
	lineBreaks    = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSpecified
	}
	return v
}

// literalField renders a single-line applicant value as plain Markdown text.
// It always follows a label, so only inline markup needs escaping.
func literalField(v string) string {
	v = strings.Join(strings.Fields(lineBreaks.Replace(v)), " ")
	return inlineMarkup.Replace(orNotSpecified(v))
}

// literalText renders a multi-line applicant value as plain Markdown text.
// Every line after the first starts a Markdown line of its own.
func literalText(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSpecified
	}
	lines := strings.Split(strings.TrimSpace(lineBreaks.Replace(v)), "\n")
	for i, line := range lines {
		line = inlineMarkup.Replace(line)
		if i > 0 {
			line = escapeBlockMarker(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// escapeBlockMarker drops indentation (indented code) and escapes a leading
// heading, quote, list or setext marker.
func escapeBlockMarker(line string) string {
	line = strings.TrimLeft(line, " \t")
	switch {
	case line == "":
		return line
	case strings.ContainsRune("#>-+=", rune(line[0])):
		return `\` + line
	case orderedMarker.MatchString(line):
		return orderedMarker.ReplaceAllString(line, `$1\$2`)
	}
	return line
}

// FormatMessage renders the operator notification text for app. Applicant
// values are escaped so channels that render Markdown show them verbatim.
func FormatMessage(app Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 Новая заявка #%s\n\n", app.ID)
	fmt.Fprintf(&b, "👤 Имя: %s\n", literalField(app.Name))
	fmt.Fprintf(&b, "📧 Email: %s\n", literalField(app.Email))
	fmt.Fprintf(&b, "📱 Телефон: %s\n", literalField(app.Phone))
	fmt.Fprintf(&b, "📋 Выбранный тариф: %s\n", literalField(app.SelectedTariff))
	fmt.Fprintf(&b, "💬 Дополнительное сообщение: %s\n\n", literalText(app.Message))
	fmt.Fprintf(&b, "⏰ Время подачи: %s", app.CreatedAt.Format(util.DateTimeLayout))
	return b.String()
}

// NewNotification builds the notification fanned out for app, including the
// spreadsheet row (id, time, name, email, phone, tariff, message).
func NewNotification(app Application) notify.Notification {
	return notify.Notification{
		ID:      app.ID,
		Subject: "Новая заявка #" + app.ID,
		Body:    FormatMessage(app),
		Row: []string{
			app.ID,
			app.CreatedAt.Format(util.DateTimeLayout),
			app.Name,
			app.Email,
			app.Phone,
			app.SelectedTariff,
			app.Message,
		},
		CreatedAt: app.CreatedAt,
	}
}
