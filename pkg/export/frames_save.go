package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/metrics"
)

// Supported export formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// maxParallelRenders bounds concurrent frame renders.
const maxParallelRenders = 4

// ParseFormat normalises a format name such as "SVG" or ".png".
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch f {
	case FormatSVG, FormatPNG, FormatJSON:
		return f, nil
	case "":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want svg, png or json)", s)
	}
}

// FrameFileName returns the file name for the frame of step id.
func FrameFileName(id int, format string) string {
	return fmt.Sprintf("step-%02d.%s", id, format)
}

// SaveFrames writes frames into dir and returns the written paths in step
// order. svg and png produce one file per frame, rendered in parallel; json
// produces a single frames.json.
func SaveFrames(ctx context.Context, dir, format string, frames []Frame) ([]string, error) {
	defer metrics.Timer(metrics.FrameExport)()
	defer debug.LogEnterExit("export " + format)()

	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	if format == FormatJSON {
		path := filepath.Join(dir, "frames.json")
		if err := saveFramesJSON(path, frames); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	paths := make([]string, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for i, f := range frames {
		path := filepath.Join(dir, FrameFileName(f.Step.ID, format))
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := saveFrame(path, format, f); err != nil {
				return fmt.Errorf("step %d: %w", f.Step.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	debug.Log("exported %d %s frames to %s", len(paths), format, dir)
	return paths, nil
}

func saveFrame(path, format string, f Frame) error {
	if format == FormatPNG {
		return RenderPNG(path, f)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderSVG(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func saveFramesJSON(path string, frames []Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteFramesJSON(file, frames); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteFramesJSON encodes frames as an indented JSON array.
func WriteFramesJSON(w io.Writer, frames []Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(frames); err != nil {
		return fmt.Errorf("encoding frames: %w", err)
	}
	return nil
}
