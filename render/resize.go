package render

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// fit computes where a src-sized image lands when scaled into width x
// height. A zero dimension keeps the source one. With crop the source
// rectangle is trimmed to the destination aspect ratio; otherwise the
// destination shrinks to keep the ratio, unless a fill colour pads it.
func fit(src image.Rectangle, width, height int, crop, fill bool) (srcRect, destSize, destRect image.Rectangle) {
	srcRect = src
	srcW, srcH := float64(src.Dx()), float64(src.Dy())

	destW, destH := float64(width), float64(height)
	if destW == 0 {
		destW = srcW
	}
	if destH == 0 {
		destH = srcH
	}
	destSize = image.Rect(0, 0, int(destW), int(destH))
	destRect = destSize

	srcAR, destAR := srcW/srcH, destW/destH
	switch {
	case crop && srcAR < destAR:
		dh := int(math.Round((srcH - srcW/destAR) / 2))
		srcRect.Min.Y += dh
		srcRect.Max.Y -= dh
	case crop && srcAR > destAR:
		dw := int(math.Round((srcW - srcH*destAR) / 2))
		srcRect.Min.X += dw
		srcRect.Max.X -= dw
	case srcAR < destAR:
		dw := destH * srcAR
		if !fill {
			destSize.Max.X = int(math.Round(dw))
			destRect = destSize
		} else if pad := int(math.Round((destW - dw) / 2)); pad > 0 {
			destRect.Min.X += pad
			destRect.Max.X -= pad
		}
	case srcAR > destAR:
		dh := destW / srcAR
		if !fill {
			destSize.Max.Y = int(math.Round(dh))
			destRect = destSize
		} else if pad := int(math.Round((destH - dh) / 2)); pad > 0 {
			destRect.Min.Y += pad
			destRect.Max.Y -= pad
		}
	}
	return srcRect, destSize, destRect
}

func resize(logger *slog.Logger, img image.Image, width, height int, crop bool, fillColor color.Color) image.Image {
	srcRect, destSize, destRect := fit(img.Bounds(), width, height, crop, fillColor != nil)
	if srcRect == img.Bounds() && destRect.Size() == srcRect.Size() && destSize == destRect {
		return img
	}

	logger.Info("resizing", "width", destRect.Dx(), "height", destRect.Dy())
	dest := image.NewRGBA(destSize)
	if fillColor != nil && !crop {
		draw.Draw(dest, destSize, image.NewUniform(fillColor), image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dest, destRect, img, srcRect, draw.Over, nil)
	return dest
}
