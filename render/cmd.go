package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"pixcanvas/canvas"
	"pixcanvas/colorf"
	"pixcanvas/palette"
	"pixcanvas/parallel"
)

type CLICmd struct {
	Out       string        `arg:"" optional:"" help:"Destination image file" default:"canvas.png"`
	Scene     string        `help:"YAML scene file; overrides size, clear and pattern" type:"existingfile"`
	Size      string        `help:"Canvas size as WIDTHxHEIGHT" default:"256x256"`
	Clear     string        `help:"Clear color (#RGB, #RGBA, #RRGGBB or #RRGGBBAA); empty disables clearing" default:"#000"`
	Pattern   string        `help:"Pattern drawn when no scene is given" enum:"solid,gradient,hue,checker,noise" default:"gradient"`
	Seed      uint64        `help:"Seed for random points" default:"1"`
	Adaptive  bool          `help:"Map the observed channel range onto 0-255 instead of 0-1" default:"false"`
	Format    string        `help:"Output format (png, bmp, tiff, gif, jpeg); inferred from the destination extension if empty"`
	Resize    bool          `help:"Resize the rendered bitmap" default:"false" group:"resize"`
	Width     int           `help:"Max width" group:"resize"`
	Height    int           `help:"Max height" group:"resize"`
	Crop      bool          `help:"Crop to maintain the requested aspect ratio" default:"false" group:"resize"`
	Fill      string        `help:"If given and not cropping, pad with this color to keep the destination aspect ratio" group:"resize"`
	Palette   string        `help:"Palette name (bw, gray4, gray16, vga16, web216) or PAL file in RIFF format" group:"palette"`
	Dither    bool          `help:"Apply Floyd-Steinberg dithering" default:"false" group:"palette"`
	FillColor color.Color   `kong:"-"`
	Pal       color.Palette `kong:"-"`
	scene     *Scene
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Format == "" {
		format, err := FormatOf(c.Out)
		if err != nil {
			return err
		}
		c.Format = format
	} else if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}

	if c.Scene != "" {
		f, err := os.Open(c.Scene)
		if err != nil {
			return fmt.Errorf("could not open scene %q: %w", c.Scene, err)
		}
		defer f.Close()
		if c.scene, err = LoadScene(f); err != nil {
			return fmt.Errorf("invalid scene %q: %w", c.Scene, err)
		}
	} else {
		size, err := parseSize(c.Size)
		if err != nil {
			return err
		}
		if c.scene, err = PatternScene(c.Pattern, size, c.Clear, c.Seed); err != nil {
			return err
		}
	}

	if c.Resize {
		switch {
		case c.Width < 0:
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case c.Height < 0:
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case c.Width == 0 && c.Height == 0:
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if !c.Crop && c.Fill != "" {
		fc, err := colorf.ParseHex(c.Fill)
		if err != nil {
			return fmt.Errorf("invalid fill color: %w", err)
		}
		c.FillColor = fc
	}

	if c.Palette != "" {
		pal, err := palette.LoadPalette(c.Palette)
		if err != nil {
			return err
		}
		c.Pal = pal
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	logger := slog.Default().With("out", c.Out)

	img := c.Render(logger, pool.Workers)

	if dir := filepath.Dir(c.Out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", dir, err)
		}
	}
	if err := Save(img, c.Format, c.Out); err != nil {
		return err
	}

	b := img.Bounds()
	logger.Info("saved", "format", c.Format, "width", b.Dx(), "height", b.Dy())
	return nil
}

// Render builds the canvas, derives its bitmap and applies the optional
// resize and palette steps. The command must have been validated.
func (c *CLICmd) Render(logger *slog.Logger, workers int) image.Image {
	opts := []canvas.Option{canvas.WithWorkers(workers), canvas.WithLogger(logger)}
	if c.Adaptive {
		opts = append(opts, canvas.WithAdaptiveRange())
	}
	cv := c.scene.NewCanvas(opts...)

	l := cv.Layout()
	logger.Info("rendered canvas", "width", l.Width, "height", l.Height, "ops", len(c.scene.Ops),
		"planar_stride", l.PlanarStride, "chunky_stride", l.ChunkyStride, "bytes", l.Bytes())

	var img image.Image = cv.Bitmap().RGBA()
	if c.Resize {
		img = resize(logger, img, c.Width, c.Height, c.Crop, c.FillColor)
	}
	if c.Pal != nil {
		img = quantize(logger.With("palette", c.Palette), img, c.Pal, c.Dither)
	}
	return img
}

func parseSize(s string) (image.Point, error) {
	var p image.Point
	if n, err := fmt.Sscanf(s, "%dx%d", &p.X, &p.Y); err != nil {
		return p, fmt.Errorf("could not read size %q: %w", s, err)
	} else if n != 2 {
		return p, fmt.Errorf("insufficient size fields in %q: %d", s, n)
	}
	if p.X < 1 || p.Y < 1 {
		return p, fmt.Errorf("invalid size %q: both dimensions must be >= 1", s)
	}
	return p, nil
}
