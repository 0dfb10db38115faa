// Package reply renders DataJud search results as chat messages.
package reply

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JustJay7/datajud-bridge/internal/datajud"
)

const (
	// NotFoundMessage is shown for every failed or empty search.
	NotFoundMessage = "❌ Processo não encontrado ou não disponível para consulta pública."

	// MaxMovements is how many recent movements a reply lists.
	MaxMovements = 3

	placeholder = "N/A"

	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 às 15:04"
)

// Accepted timestamp layouts, tried in order. A trailing Z is handled by
// RFC 3339 as a +00:00 offset.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	"20060102150405",
}

// Formatter builds reply text. Now and Location control the
// "Consulta realizada em" footer.
type Formatter struct {
	Now      func() time.Time
	Location *time.Location
}

// NewFormatter returns a formatter using the wall clock in loc.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{Now: time.Now, Location: loc}
}

// Format renders res. Any failure, a zero hit count or an empty hit list
// yields NotFoundMessage.
func (f *Formatter) Format(res datajud.Result) string {
	if !res.OK() {
		return NotFoundMessage
	}

	proc, ok := res.Response.First()
	if !ok {
		return NotFoundMessage
	}

	movements := RecentMovements(proc.Movimentos, MaxMovements)
	lines := make([]string, 0, len(movements))
	for _, m := range movements {
		lines = append(lines, fmt.Sprintf("• %s\n  📅 %s", orPlaceholder(m.Nome), formatTimestamp(m.DataHora, dateTimeLayout)))
	}

	var b strings.Builder
	b.WriteString("📋 **CONSULTA PROCESSUAL**\n\n")
	fmt.Fprintf(&b, "🔢 **Número:** %s\n", orPlaceholder(proc.NumeroProcesso))
	fmt.Fprintf(&b, "⚖️ **Classe:** %s\n", orPlaceholder(proc.Classe.Nome))
	fmt.Fprintf(&b, "🏛️ **Tribunal:** %s\n", orPlaceholder(proc.Tribunal))
	fmt.Fprintf(&b, "📍 **Órgão Julgador:** %s\n", orPlaceholder(proc.OrgaoJulgador.Nome))
	fmt.Fprintf(&b, "📅 **Data de Ajuizamento:** %s\n\n", formatTimestamp(proc.DataAjuizamento, dateLayout))
	b.WriteString("📈 **ÚLTIMOS MOVIMENTOS:**\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n---\n")
	b.WriteString("ℹ️ Dados obtidos do DataJud/CNJ\n")
	fmt.Fprintf(&b, "🕐 Consulta realizada em %s", f.now().Format(dateTimeLayout))

	return b.String()
}

func (f *Formatter) now() time.Time {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// RecentMovements returns up to limit movements ordered by their raw
// dataHora string, newest first. The comparison is lexicographic; entries
// without a timestamp sort last and ties keep their original order.
func RecentMovements(movements []datajud.Movimento, limit int) []datajud.Movimento {
	sorted := make([]datajud.Movimento, len(movements))
	copy(sorted, movements)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DataHora > sorted[j].DataHora
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// formatTimestamp renders an ISO-8601 value with layout, keeping the value's
// own offset. Unparseable values come back unchanged and empty ones as N/A.
func formatTimestamp(raw, layout string) string {
	if raw == "" {
		return placeholder
	}
	t, ok := parseTimestamp(raw)
	if !ok {
		return raw
	}
	return t.Format(layout)
}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
