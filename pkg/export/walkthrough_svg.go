package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/walkthrough/pkg/metrics"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

var (
	colorPage      = color.RGBA{0x12, 0x12, 0x1c, 0xff}
	colorIcon      = color.RGBA{0x3a, 0x3f, 0x58, 0xff}
	colorIconHi    = color.RGBA{0xff, 0xd1, 0x66, 0xff}
	colorPanel     = color.RGBA{0x24, 0x27, 0x3a, 0xff}
	colorText      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorSubtle    = color.RGBA{0xa0, 0xa6, 0xc0, 0xff}
	colorError     = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	colorButton    = color.RGBA{0x4b, 0x6b, 0xff, 0xff}
	colorButtonOff = color.RGBA{0x4a, 0x4d, 0x60, 0xff}
)

// Backdrop opacity over the page while a tour is running.
const backdropOpacity = 0.7

const (
	buttonW   = 96
	buttonH   = 32
	panelWrap = 34 // characters per panel line
)

// RenderSVG writes f as a standalone SVG document.
func RenderSVG(w io.Writer, f Frame) error {
	defer metrics.Timer(metrics.SVGRender)()
	if err := f.Viewport.Validate(); err != nil {
		return err
	}

	width, height := px(f.Viewport.Width), px(f.Viewport.Height)
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("Step %d of %d: %s", f.State.CurrentStep, f.State.TotalSteps, f.Step.IconName))

	canvas.Def()
	for _, m := range walkthrough.Markers() {
		writeMarker(canvas, m, f.Color)
	}
	canvas.DefEnd()

	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorPage)))

	for _, icon := range f.Icons {
		if !icon.Active {
			drawIconSVG(canvas, icon)
		}
	}
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:#000000;fill-opacity:%g", backdropOpacity))
	for _, icon := range f.Icons {
		if icon.Active {
			drawIconSVG(canvas, icon)
		}
	}

	drawPanelSVG(canvas, f)

	if f.HasPath {
		canvas.Path(f.PathData,
			fmt.Sprintf(`stroke="%s"`, f.Color),
			`stroke-width="2"`,
			`fill="none"`,
			fmt.Sprintf(`marker-end="url(#%s)"`, f.Marker.ID),
		)
	}

	canvas.End()
	return nil
}

// writeMarker emits the marker element directly; svgo's Marker helper only
// takes integer reference points.
func writeMarker(canvas *svg.SVG, m walkthrough.Marker, fill string) {
	fmt.Fprintf(canvas.Writer,
		`<marker id="%s" markerWidth="%s" markerHeight="%s" refX="%s" refY="%s" orient="auto">`+"\n",
		m.ID, num(m.Width), num(m.Height), num(m.RefX), num(m.RefY))
	fmt.Fprintf(canvas.Writer, `<polygon points="%s" fill="%s" />`+"\n", m.Points, fill)
	fmt.Fprintln(canvas.Writer, `</marker>`)
}

func drawIconSVG(canvas *svg.SVG, icon IconFrame) {
	fill := colorIcon
	style := "stroke:none"
	if icon.Active {
		fill = colorIconHi
		style = fmt.Sprintf("stroke:%s;stroke-width:2", css(colorText))
	}
	x, y := px(icon.Rect.X), px(icon.Rect.Y)
	w, h := px(icon.Rect.W), px(icon.Rect.H)
	canvas.Roundrect(x, y, w, h, 10, 10, fmt.Sprintf("fill:%s;%s", css(fill), style))
	canvas.Text(x+w/2, y+h+12, truncate(icon.Name, 12),
		fmt.Sprintf("fill:%s;font-size:9px;font-family:monospace;text-anchor:middle", css(colorSubtle)))
}

func drawPanelSVG(canvas *svg.SVG, f Frame) {
	x, y := px(f.Panel.X), px(f.Panel.Y)
	w, h := px(f.Panel.W), px(f.Panel.H)
	canvas.Roundrect(x, y, w, h, 10, 10, fmt.Sprintf("fill:%s", css(colorPanel)))

	canvas.Text(x+12, y+22, fmt.Sprintf("%d/%d  %s", f.State.CurrentStep, f.State.TotalSteps, f.Step.Text),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;font-weight:bold", css(colorText)))

	body, fill := f.Text, colorSubtle
	if f.TextError != "" {
		body, fill = f.TextError, colorError
	}
	for i, line := range wrapText(body, panelWrap) {
		canvas.Text(x+12, y+44+i*16, line,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(fill)))
	}

	by := y + h + 12
	drawButtonSVG(canvas, x, by, f.PreviousLabel, f.CanPrevious)
	drawButtonSVG(canvas, x+w-buttonW, by, f.NextLabel, f.CanNext)
}

func drawButtonSVG(canvas *svg.SVG, x, y int, label string, enabled bool) {
	fill := colorButtonOff
	if enabled {
		fill = colorButton
	}
	canvas.Roundrect(x, y, buttonW, buttonH, 6, 6, fmt.Sprintf("fill:%s", css(fill)))
	canvas.Text(x+buttonW/2, y+buttonH/2+4, label,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorText)))
}

// --- helpers ---------------------------------------------------------------

func px(v float64) int {
	return int(math.Round(v))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 3 {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, "...")
}

// wrapText breaks s on spaces into lines at most width cells wide. Words
// longer than width are placed on their own line.
func wrapText(s string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if curW > 0 && curW+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
