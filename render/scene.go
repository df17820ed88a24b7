package render

import (
	"fmt"
	"image"
	"io"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"pixcanvas/canvas"
	"pixcanvas/colorf"
)

// Scene is a canvas description: its size, clear colour and the drawing
// operations applied in order.
type Scene struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Clear  string `yaml:"clear"` // empty disables Clear
	Seed   uint64 `yaml:"seed"`
	Ops    []Op   `yaml:"ops"`

	clearColor *colorf.Color
}

// Op is one drawing operation. Which fields apply depends on Op.
//
//	clear                     Clear with the scene clear colour
//	fill     color            ClearTo
//	point    x y color
//	row      y from to color  points [from, to) of row y
//	column   x from to color  points [from, to) of column x
//	rect     x y w h color
//	random   count color      random points
//	checker  size color alt
//	gradient axis color alt   linear blend along x or y
//	hue      axis l c alpha   OKLCh hue sweep along x or y
type Op struct {
	Op    string  `yaml:"op"`
	X     int     `yaml:"x"`
	Y     int     `yaml:"y"`
	W     int     `yaml:"w"`
	H     int     `yaml:"h"`
	From  int     `yaml:"from"`
	To    int     `yaml:"to"`
	Count int     `yaml:"count"`
	Size  int     `yaml:"size"`
	Axis  string  `yaml:"axis"`
	Color string  `yaml:"color"`
	Alt   string  `yaml:"alt"`
	L     float32 `yaml:"l"`
	C     float32 `yaml:"c"`
	Alpha float32 `yaml:"alpha"`

	color, alt colorf.Color
}

// LoadScene decodes and validates a YAML scene.
func LoadScene(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("could not decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) Size() image.Point {
	return image.Pt(s.Width, s.Height)
}

// Validate parses the colours and checks every operation against the scene
// bounds, so that Apply never trips a canvas precondition.
func (s *Scene) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("invalid scene size %dx%d", s.Width, s.Height)
	}

	s.clearColor = nil
	if s.Clear != "" {
		c, err := colorf.ParseHex(s.Clear)
		if err != nil {
			return fmt.Errorf("invalid clear color: %w", err)
		}
		s.clearColor = &c
	}

	bounds := image.Rect(0, 0, s.Width, s.Height)
	for i := range s.Ops {
		if err := s.Ops[i].validate(bounds); err != nil {
			return fmt.Errorf("op #%d (%s): %w", i, s.Ops[i].Op, err)
		}
	}
	return nil
}

func (op *Op) validate(bounds image.Rectangle) error {
	parse := func(field, s string, dst *colorf.Color) error {
		c, err := colorf.ParseHex(s)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
		*dst = c
		return nil
	}
	in := func(x, y int) error {
		if !image.Pt(x, y).In(bounds) {
			return fmt.Errorf("point (%d,%d) outside %dx%d", x, y, bounds.Dx(), bounds.Dy())
		}
		return nil
	}
	span := func(from, to, limit int) error {
		if from < 0 || to > limit || from > to {
			return fmt.Errorf("invalid range [%d,%d) for length %d", from, to, limit)
		}
		return nil
	}
	axis := func() error {
		switch op.Axis {
		case "":
			op.Axis = "x"
		case "x", "y":
		default:
			return fmt.Errorf("invalid axis %q", op.Axis)
		}
		return nil
	}

	switch op.Op {
	case "clear":
		return nil
	case "fill":
		return parse("color", op.Color, &op.color)
	case "point":
		if err := in(op.X, op.Y); err != nil {
			return err
		}
		return parse("color", op.Color, &op.color)
	case "row":
		if op.Y < 0 || op.Y >= bounds.Dy() {
			return fmt.Errorf("row %d outside height %d", op.Y, bounds.Dy())
		}
		if err := span(op.From, op.To, bounds.Dx()); err != nil {
			return err
		}
		return parse("color", op.Color, &op.color)
	case "column":
		if op.X < 0 || op.X >= bounds.Dx() {
			return fmt.Errorf("column %d outside width %d", op.X, bounds.Dx())
		}
		if err := span(op.From, op.To, bounds.Dy()); err != nil {
			return err
		}
		return parse("color", op.Color, &op.color)
	case "rect":
		r := image.Rect(op.X, op.Y, op.X+op.W, op.Y+op.H)
		if op.W < 0 || op.H < 0 || !r.In(bounds) {
			return fmt.Errorf("rect %v outside %v", r, bounds)
		}
		return parse("color", op.Color, &op.color)
	case "random":
		if op.Count < 0 {
			return fmt.Errorf("negative count %d", op.Count)
		}
		return parse("color", op.Color, &op.color)
	case "checker":
		if op.Size < 1 {
			return fmt.Errorf("checker size must be >= 1, got %d", op.Size)
		}
		if err := parse("color", op.Color, &op.color); err != nil {
			return err
		}
		return parse("alt", op.Alt, &op.alt)
	case "gradient":
		if err := axis(); err != nil {
			return err
		}
		if err := parse("color", op.Color, &op.color); err != nil {
			return err
		}
		return parse("alt", op.Alt, &op.alt)
	case "hue":
		if op.Alpha == 0 {
			op.Alpha = 1
		}
		return axis()
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

// NewCanvas allocates a canvas for the scene and applies it.
func (s *Scene) NewCanvas(opts ...canvas.Option) *canvas.Canvas {
	opts = append([]canvas.Option{
		canvas.WithClearColor(s.clearColor),
		canvas.WithRand(rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))),
	}, opts...)
	cv := canvas.New(s.Size(), opts...)
	s.Apply(cv)
	return cv
}

// Apply runs the operations on cv. The scene must have been validated
// against a canvas at least as large as cv.
func (s *Scene) Apply(cv *canvas.Canvas) {
	for _, op := range s.Ops {
		op.apply(cv)
	}
}

func (op *Op) apply(cv *canvas.Canvas) {
	size := cv.Size()
	switch op.Op {
	case "clear":
		cv.Clear()
	case "fill":
		cv.ClearTo(op.color)
	case "point":
		cv.Set(op.X, op.Y, op.color)
	case "row":
		cv.SetRow(op.Y, op.From, op.To, op.color)
	case "column":
		cv.SetColumn(op.X, op.From, op.To, op.color)
	case "rect":
		for y := op.Y; y < op.Y+op.H; y++ {
			cv.SetRow(y, op.X, op.X+op.W, op.color)
		}
	case "random":
		for range op.Count {
			cv.SetPoint(cv.RandomPoint(), op.color)
		}
	case "checker":
		for y := range size.Y {
			for x := range size.X {
				c := op.color
				if (x/op.Size+y/op.Size)%2 == 1 {
					c = op.alt
				}
				cv.Set(x, y, c)
			}
		}
	case "gradient", "hue":
		n := size.X
		if op.Axis == "y" {
			n = size.Y
		}
		for i := range n {
			t := float32(0)
			if n > 1 {
				t = float32(i) / float32(n-1)
			}
			var c colorf.Color
			if op.Op == "gradient" {
				c = op.color.Lerp(op.alt, t)
			} else {
				c = colorf.OKLCh(op.L, op.C, t*2*math32.Pi, op.Alpha)
			}
			if op.Axis == "y" {
				cv.SetRow(i, 0, size.X, c)
			} else {
				cv.SetColumn(i, 0, size.Y, c)
			}
		}
	}
}

// PatternScene builds a single-pattern scene from command line settings.
func PatternScene(pattern string, size image.Point, clear string, seed uint64) (*Scene, error) {
	s := &Scene{Width: size.X, Height: size.Y, Clear: clear, Seed: seed}
	ops := []Op{{Op: "clear"}}
	switch pattern {
	case "solid":
	case "gradient":
		ops = append(ops, Op{Op: "gradient", Axis: "x", Color: "#000000", Alt: "#ffffff"})
	case "hue":
		ops = append(ops, Op{Op: "hue", Axis: "x", L: 0.75, C: 0.15, Alpha: 1})
	case "checker":
		ops = append(ops, Op{Op: "checker", Size: max(1, min(size.X, size.Y)/8), Color: "#ffffff", Alt: "#00000000"})
	case "noise":
		ops = append(ops, Op{Op: "random", Count: size.X * size.Y / 4, Color: "#ffffff"})
	default:
		return nil, fmt.Errorf("unknown pattern %q", pattern)
	}
	s.Ops = ops
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
