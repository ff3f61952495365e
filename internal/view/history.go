package view

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/rivo/uniseg"
)

const (
	DefaultTruncateLength = 60
	ellipsis              = "..."

	// columns of the history table: content, voice, created
	historyColumns = 3

	displayDateLayout = "02/01/2006 15:04"
)

// accepted created_at layouts, tried in order
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// FormatDuration renders seconds as MM:SS. Minutes are unbounded and
// negative input is clamped to zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Truncate cuts text to maxLength user-perceived characters and appends
// "..." when anything was cut. A negative maxLength behaves like zero.
func Truncate(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	if uniseg.GraphemeClusterCount(text) <= maxLength {
		return text
	}

	var sb strings.Builder
	g := uniseg.NewGraphemes(text)
	for n := 0; n < maxLength && g.Next(); n++ {
		sb.WriteString(g.Str())
	}
	sb.WriteString(ellipsis)
	return sb.String()
}

// FormatDisplayDate renders a stored timestamp as DD/MM/YYYY HH:MM.
// Timestamps without an offset are read in loc.
func FormatDisplayDate(dateString string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(dateString)
	if s == "" {
		return "", &DateParseError{Value: dateString, Err: errors.New("empty timestamp")}
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.Format(displayDateLayout), nil
		}
		lastErr = err
	}
	return "", &DateParseError{Value: dateString, Err: lastErr}
}

type HistoryRenderer struct {
	tmpl      *template.Template
	loc       *Localizer
	tz        *time.Location
	maxLength int
}

type RendererOption func(*HistoryRenderer)

func WithMaxLength(n int) RendererOption {
	return func(r *HistoryRenderer) { r.maxLength = n }
}

func WithTimezone(tz *time.Location) RendererOption {
	return func(r *HistoryRenderer) {
		if tz != nil {
			r.tz = tz
		}
	}
}

func WithLocalizer(l *Localizer) RendererOption {
	return func(r *HistoryRenderer) {
		if l != nil {
			r.loc = l
		}
	}
}

func NewHistoryRenderer(opts ...RendererOption) *HistoryRenderer {
	r := &HistoryRenderer{
		tmpl:      template.Must(template.New("history").Parse(historyTemplates)),
		loc:       NewLocalizer(DefaultLanguage),
		tz:        time.Local,
		maxLength: DefaultTruncateLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type badgeView struct {
	Started bool
	Label   string
}

type rowView struct {
	ID        int64
	AudioURL  string
	Text      string
	Voice     string
	CreatedAt string
	Position  int

	Label string
	Hint  string
	Badge badgeView
	Date  string
}

type tableView struct {
	Rows    []rowView
	Columns int
	Empty   string
}

func (r *HistoryRenderer) badge(position int) badgeView {
	if position > 0 {
		return badgeView{Started: true, Label: r.loc.T(MsgListenedUpTo, FormatDuration(position))}
	}
	return badgeView{Label: r.loc.T(MsgNotStarted)}
}

func (r *HistoryRenderer) row(item models.HistoryRecord) rowView {
	text := r.loc.T(MsgNoText)
	if item.Text != nil {
		text = *item.Text
	}
	voice := r.loc.T(MsgUnknownVoice)
	if item.Voice != nil {
		voice = *item.Voice
	}
	var audioURL string
	if item.AudioURL != nil {
		audioURL = *item.AudioURL
	}
	position := item.Position
	if position < 0 {
		position = 0
	}

	date, err := FormatDisplayDate(item.CreatedAt, r.tz)
	if err != nil {
		date = r.loc.T(MsgUnknownDate)
	}

	return rowView{
		ID:        item.ID,
		AudioURL:  audioURL,
		Text:      text,
		Voice:     voice,
		CreatedAt: item.CreatedAt,
		Position:  position,
		Label:     Truncate(text, r.maxLength),
		Hint:      r.loc.T(MsgRowHint),
		Badge:     r.badge(position),
		Date:      date,
	}
}

func (r *HistoryRenderer) execute(name string, data any) (template.HTML, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(sb.String()), nil
}

// PositionBadge renders the listening progress badge for a position in
// seconds.
func (r *HistoryRenderer) PositionBadge(position int) template.HTML {
	out, err := r.execute("position_badge", r.badge(position))
	if err != nil {
		// static template with string fields only
		panic(err)
	}
	return out
}

// RenderRow renders one <tr>. An unparseable CreatedAt degrades the date
// cell instead of failing the row.
func (r *HistoryRenderer) RenderRow(item models.HistoryRecord) (template.HTML, error) {
	return r.execute("history_row", r.row(item))
}

// RenderTable renders the rows in input order, or a single empty-state row
// spanning every column when items is empty.
func (r *HistoryRenderer) RenderTable(items []models.HistoryRecord) (template.HTML, error) {
	rows := make([]rowView, 0, len(items))
	for _, item := range items {
		rows = append(rows, r.row(item))
	}
	return r.execute("history_table", tableView{
		Rows:    rows,
		Columns: historyColumns,
		Empty:   r.loc.T(MsgEmptyHistory),
	})
}

const historyTemplates = `
{{- define "position_badge" -}}
{{- if .Started -}}
<span class="inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium bg-blue-100 text-blue-800" data-badge="listened">
<svg class="w-3 h-3 mr-1" fill="currentColor" viewBox="0 0 20 20"><path fill-rule="evenodd" d="M10 18a8 8 0 100-16 8 8 0 000 16zM9.555 7.168A1 1 0 008 8v4a1 1 0 001.555.832l3-2a1 1 0 000-1.664l-3-2z" clip-rule="evenodd" /></svg>
{{.Label}}
</span>
{{- else -}}
<span class="inline-flex items-center px-2.5 py-0.5 rounded-full text-xs font-medium bg-gray-100 text-gray-600" data-badge="not-started">
<svg class="w-3 h-3 mr-1" fill="currentColor" viewBox="0 0 20 20"><path fill-rule="evenodd" d="M10 18a8 8 0 100-16 8 8 0 000 16zm3.707-9.293a1 1 0 00-1.414-1.414L9 10.586 7.707 9.293a1 1 0 00-1.414 1.414l2 2a1 1 0 001.414 0l4-4z" clip-rule="evenodd" /></svg>
{{.Label}}
</span>
{{- end -}}
{{- end -}}

{{- define "voice_badge" -}}
<span class="inline-flex items-center px-3 py-1 rounded-full text-xs font-medium bg-purple-100 text-purple-800" data-badge="voice">
<svg class="w-3 h-3 mr-1" fill="currentColor" viewBox="0 0 20 20"><path fill-rule="evenodd" d="M7 4a3 3 0 016 0v4a3 3 0 11-6 0V4zm4 10.93A7.001 7.001 0 0017 8a1 1 0 10-2 0A5 5 0 015 8a1 1 0 00-2 0 7.001 7.001 0 006 6.93V17H6a1 1 0 100 2h8a1 1 0 100-2h-3v-2.07z" clip-rule="evenodd" /></svg>
{{.}}
</span>
{{- end -}}

{{- define "history_row" -}}
<tr class="audio-history-row cursor-pointer hover:bg-gray-50 hover:shadow-sm border-b transition-all duration-150"
    data-audio-id="{{.ID}}"
    data-audio-url="{{.AudioURL}}"
    data-audio-text="{{.Text}}"
    data-audio-voice="{{.Voice}}"
    data-audio-date="{{.CreatedAt}}"
    data-audio-position="{{.Position}}">
<td class="px-6 py-4">
<div class="flex items-center gap-3">
<div class="flex-shrink-0">
<div class="w-10 h-10 bg-gradient-to-br from-blue-500 to-purple-600 rounded-lg flex items-center justify-center">
<svg class="w-5 h-5 text-white" fill="currentColor" viewBox="0 0 20 20"><path d="M18 3a1 1 0 00-1.196-.98l-10 2A1 1 0 006 5v9.114A4.369 4.369 0 005 14c-1.657 0-3 .895-3 2s1.343 2 3 2 3-.895 3-2V7.82l8-1.6v5.894A4.37 4.37 0 0015 12c-1.657 0-3 .895-3 2s1.343 2 3 2 3-.895 3-2V3z" /></svg>
</div>
</div>
<div class="flex-1 min-w-0">
<p class="text-sm font-medium text-gray-900 truncate">{{.Label}}</p>
<p class="text-xs text-gray-500 mt-0.5">{{.Hint}}</p>
<div class="mt-1">{{template "position_badge" .Badge}}</div>
</div>
</div>
</td>
<td class="px-6 py-4">{{template "voice_badge" .Voice}}</td>
<td class="px-6 py-4">
<div class="flex items-center gap-2 text-sm text-gray-600">
<svg class="w-4 h-4 text-gray-400" fill="currentColor" viewBox="0 0 20 20"><path fill-rule="evenodd" d="M6 2a1 1 0 00-1 1v1H4a2 2 0 00-2 2v10a2 2 0 002 2h12a2 2 0 002-2V6a2 2 0 00-2-2h-1V3a1 1 0 10-2 0v1H7V3a1 1 0 00-1-1zm0 5a1 1 0 000 2h8a1 1 0 100-2H6z" clip-rule="evenodd" /></svg>
{{.Date}}
</div>
</td>
</tr>
{{- end -}}

{{- define "history_empty" -}}
<tr class="history-empty">
<td colspan="{{.Columns}}" class="px-6 py-12 text-center text-gray-500">
<div class="text-4xl mb-2">📭</div>
<p>{{.Empty}}</p>
</td>
</tr>
{{- end -}}

{{- define "history_table" -}}
{{- range .Rows}}{{template "history_row" .}}{{else}}{{template "history_empty" $}}{{end -}}
{{- end -}}
`
