package export

import (
	"image/color"
	"strconv"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/walkthrough/pkg/metrics"
	"github.com/vanderheijden86/walkthrough/pkg/walkthrough"
)

// curveSamples is the number of line segments used to draw the arrow.
const curveSamples = 48

// RenderPNG rasterises f to a PNG file at path.
func RenderPNG(path string, f Frame) error {
	defer metrics.Timer(metrics.PNGRender)()
	if err := f.Viewport.Validate(); err != nil {
		return err
	}

	dc := gg.NewContext(px(f.Viewport.Width), px(f.Viewport.Height))
	dc.SetColor(colorPage)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for _, icon := range f.Icons {
		if !icon.Active {
			drawIconPNG(dc, icon)
		}
	}
	dc.SetRGBA(0, 0, 0, backdropOpacity)
	dc.DrawRectangle(0, 0, f.Viewport.Width, f.Viewport.Height)
	dc.Fill()
	for _, icon := range f.Icons {
		if icon.Active {
			drawIconPNG(dc, icon)
		}
	}

	drawPanelPNG(dc, f)

	if f.HasPath {
		drawCurvePNG(dc, f.Path, hexColor(f.Color))
	}

	return dc.SavePNG(path)
}

func drawIconPNG(dc *gg.Context, icon IconFrame) {
	r := icon.Rect
	fill := colorIcon
	if icon.Active {
		fill = colorIconHi
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 10)
	dc.Fill()
	if icon.Active {
		dc.SetColor(colorText)
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 10)
		dc.Stroke()
	}
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(truncate(icon.Name, 12), r.X+r.W/2, r.Y+r.H+10, 0.5, 0.5)
}

func drawPanelPNG(dc *gg.Context, f Frame) {
	p := f.Panel
	dc.SetColor(colorPanel)
	dc.DrawRoundedRectangle(p.X, p.Y, p.W, p.H, 10)
	dc.Fill()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(
		strconv.Itoa(f.State.CurrentStep)+"/"+strconv.Itoa(f.State.TotalSteps)+"  "+f.Step.Text,
		p.X+12, p.Y+18, 0, 0.5)

	body, fill := f.Text, colorSubtle
	if f.TextError != "" {
		body, fill = f.TextError, colorError
	}
	dc.SetColor(fill)
	for i, line := range wrapText(body, panelWrap) {
		dc.DrawStringAnchored(line, p.X+12, p.Y+40+float64(i)*16, 0, 0.5)
	}

	by := p.Y + p.H + 12
	drawButtonPNG(dc, p.X, by, f.PreviousLabel, f.CanPrevious)
	drawButtonPNG(dc, p.X+p.W-buttonW, by, f.NextLabel, f.CanNext)
}

func drawButtonPNG(dc *gg.Context, x, y float64, label string, enabled bool) {
	fill := colorButtonOff
	if enabled {
		fill = colorButton
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, buttonW, buttonH, 6)
	dc.Fill()
	dc.SetColor(colorText)
	dc.DrawStringAnchored(label, x+buttonW/2, y+buttonH/2, 0.5, 0.5)
}

// drawCurvePNG strokes the sampled curve and fills an arrow head along the
// final tangent.
func drawCurvePNG(dc *gg.Context, path walkthrough.Path, c color.Color) {
	pts := path.Sample(curveSamples)
	dc.SetColor(c)
	dc.SetLineWidth(2)
	dc.NewSubPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()

	h := path.Heading()
	if h.IsZero() {
		return
	}
	const length, half = 10.0, 3.5
	tip := path.End
	base := walkthrough.Point{X: tip.X - h.X*length, Y: tip.Y - h.Y*length}
	nx, ny := -h.Y, h.X
	dc.NewSubPath()
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(base.X+nx*half, base.Y+ny*half)
	dc.LineTo(base.X-nx*half, base.Y-ny*half)
	dc.ClosePath()
	dc.Fill()
}

// hexColor parses #RRGGBB, falling back to white.
func hexColor(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return colorText
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorText
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}
