package tagbar

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/filterbar/internal/i18n"
)

const (
	removeGlyph = "✕"
	ellipsis    = "…"

	// maxChipValueWidth is the widest a chip's value may render before
	// it is truncated with an ellipsis.
	maxChipValueWidth = 24
)

type regionKind int

const (
	regionChip regionKind = iota
	regionClearAll
)

// hitRegion maps a rendered screen span back to the chip (or action)
// that produced it.
type hitRegion struct {
	x0, x1, y int
	kind      regionKind
	key       string
	value     string
}

// Render draws the bar onto one row of the screen starting at (x, y)
// and spanning width cells. It records hit regions for HandleMouse.
func (b *Bar) Render(screen tcell.Screen, x, y, width int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.regions = b.regions[:0]

	// Clear the row first so stale chips never linger.
	for col := x; col < x+width; col++ {
		screen.SetContent(col, y, ' ', nil, b.theme.Bar)
	}

	filters := b.state.Filters()
	cur := x
	limit := x + width

	if len(filters) == 0 {
		drawText(screen, cur, y, limit, b.printer.Get(i18n.KeyNoFilters), b.theme.Count)
		return
	}

	label := b.printer.FormatCount(i18n.KeyActiveFilters, b.state.Count())
	cur = drawText(screen, cur, y, limit, label+" ", b.theme.Count)

	for _, f := range filters {
		for _, value := range f.Values {
			cur = b.drawChip(screen, cur, y, limit, f.Key, value)
			if cur >= limit {
				return
			}
		}
	}

	clearLabel := b.printer.Get(i18n.KeyClearAll)
	start := cur + 1
	end := drawText(screen, start, y, limit, clearLabel, b.theme.ClearAll)
	if end > start {
		b.regions = append(b.regions, hitRegion{
			x0:   start,
			x1:   end - 1,
			y:    y,
			kind: regionClearAll,
		})
	}
}

// drawChip renders one "[key: value ✕]" chip and records its hit region.
// Returns the column after the chip and its trailing gap.
func (b *Bar) drawChip(screen tcell.Screen, x, y, limit int, key, value string) int {
	start := x
	cur := drawText(screen, x, y, limit, " "+key, b.theme.ChipKey)
	cur = drawText(screen, cur, y, limit, ": "+truncate(value, maxChipValueWidth)+" ", b.theme.Chip)
	cur = drawText(screen, cur, y, limit, removeGlyph+" ", b.theme.Remove)

	if cur > start {
		b.regions = append(b.regions, hitRegion{
			x0:    start,
			x1:    cur - 1,
			y:     y,
			kind:  regionChip,
			key:   key,
			value: value,
		})
	}

	// One cell of bar background between chips.
	if cur < limit {
		screen.SetContent(cur, y, ' ', nil, b.theme.Bar)
		cur++
	}
	return cur
}

// HandleMouse dispatches a primary click at screen position (x, y).
// A click on a chip removes it; a click on the clear-all action clears
// the bar. Returns true when the click hit something.
func (b *Bar) HandleMouse(ctx context.Context, x, y int) bool {
	b.mu.Lock()
	var hit *hitRegion
	for i := range b.regions {
		r := &b.regions[i]
		if r.y == y && x >= r.x0 && x <= r.x1 {
			hit = r
			break
		}
	}
	b.mu.Unlock()

	if hit == nil {
		return false
	}

	var err error
	switch hit.kind {
	case regionChip:
		err = b.RemoveTag(ctx, hit.key, hit.value)
	case regionClearAll:
		err = b.ClearAll(ctx)
	}
	if err != nil {
		b.logger.Error().Err(err).Msg("mouse action failed")
	}
	return true
}

// drawText draws a string left to right until limit, returning the
// column after the last cell written. Wide characters occupy the cells
// tcell assigns them.
func drawText(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	cur := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if cur >= limit {
			break
		}
		runes := gr.Runes()
		if len(runes) == 0 {
			continue
		}
		screen.SetContent(cur, y, runes[0], runes[1:], style)
		cur += cellWidth(gr.Str())
	}
	return cur
}

// truncate limits a string to max cells, appending an ellipsis when it
// was cut. Splits on grapheme cluster boundaries so combining marks and
// emoji never tear.
func truncate(s string, max int) string {
	if uniseg.StringWidth(s) <= max {
		return s
	}

	budget := max - uniseg.StringWidth(ellipsis)
	var out []byte
	width := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := cellWidth(gr.Str())
		if width+w > budget {
			break
		}
		out = append(out, gr.Bytes()...)
		width += w
	}
	return string(out) + ellipsis
}

// cellWidth returns the terminal cell width of one grapheme cluster,
// never less than one cell.
func cellWidth(cluster string) int {
	if w := uniseg.StringWidth(cluster); w > 0 {
		return w
	}
	return 1
}
