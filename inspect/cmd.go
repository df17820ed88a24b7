package inspect

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"pixcanvas/canvas"
	"pixcanvas/parallel"
	"pixcanvas/render"
)

type CLICmd struct {
	Scan     string `help:"Source folder to scan" default:"."`
	Export   string `help:"If given, write every derived bitmap as PNG into this folder. Relative to scan dir if not absolute."`
	Adaptive bool   `help:"Map the observed channel range onto 0-255 instead of 0-1" default:"false"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if c.Export != "" && !filepath.IsAbs(c.Export) {
		c.Export = filepath.Join(scanDir, c.Export)
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if c.Export != "" {
		if err := os.MkdirAll(c.Export, 0o755); err != nil {
			return fmt.Errorf("unable to create export folder %q: %w", c.Export, err)
		}
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func() {
			logger := slog.Default().With("file", filepath.Join(c.Scan, file.Name()))
			if err := c.inspect(logger, file.Name()); err != nil {
				errCount.Add(1)
				logger.Error("could not inspect image", "error", err)
				return
			}
			processedCount.Add(1)
		})
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) inspect(logger *slog.Logger, fileName string) error {
	imgFile, err := os.Open(filepath.Join(c.Scan, fileName))
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("empty %s image", imgType)
	}

	opts := []canvas.Option{canvas.WithLogger(logger)}
	if c.Adaptive {
		opts = append(opts, canvas.WithAdaptiveRange())
	}
	cv := canvas.FromImage(img, opts...)
	rep := Analyze(img, cv)

	logger.Info("inspected", "type", imgType, "width", rep.Width, "height", rep.Height,
		"planar_stride", rep.PlanarStride, "chunky_stride", rep.ChunkyStride, "bytes", rep.Bytes(),
		"mean", rep.Mean.Hex(), "opaque", rep.Opaque, "max_deviation", rep.MaxDeviation)

	if c.Export != "" {
		dest := filepath.Join(c.Export, strings.TrimSuffix(fileName, filepath.Ext(fileName))+".png")
		if err := render.Save(cv.Bitmap().RGBA(), "png", dest); err != nil {
			return err
		}
	}
	return nil
}
