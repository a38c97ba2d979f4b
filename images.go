package homepage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

const (
	maxAvatarWidth = 480
	blurSampleSize = 24
	jpegQuality    = 80
)

// Avatar output names under /public.
const (
	AvatarFile     = "avatar.jpg"
	AvatarBlurFile = "avatar-blur.jpg"
)

// ProcessAvatar decodes a portrait and returns two JPEGs: the avatar capped
// at maxAvatarWidth, and a blurred placeholder made by shrinking to a few
// pixels and scaling back up.
func ProcessAvatar(src io.Reader) (full, blurred []byte, err error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}

	img = fitWidth(img, maxAvatarWidth)
	full, err = encodeJPEG(img)
	if err != nil {
		return nil, nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	sw, sh := blurSampleSize, max(1, h*blurSampleSize/max(1, w))
	if w < h {
		sw, sh = max(1, w*blurSampleSize/max(1, h)), blurSampleSize
	}
	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, bounds, draw.Src, nil)
	back := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(back, back.Bounds(), small, small.Bounds(), draw.Src, nil)
	blurred, err = encodeJPEG(back)
	if err != nil {
		return nil, nil, err
	}
	return full, blurred, nil
}

func fitWidth(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth {
		return img
	}
	newH := h * maxWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteAvatar processes the portrait at srcPath into dir.
func WriteAvatar(srcPath, dir string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("homepage: open avatar: %w", err)
	}
	defer f.Close()

	full, blurred, err := ProcessAvatar(f)
	if err != nil {
		return fmt.Errorf("homepage: process avatar: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("homepage: create avatar dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, AvatarFile), full, 0o644); err != nil {
		return fmt.Errorf("homepage: write avatar: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, AvatarBlurFile), blurred, 0o644); err != nil {
		return fmt.Errorf("homepage: write avatar placeholder: %w", err)
	}
	return nil
}
