package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp 디코더 등록
)

var ErrDecode = errors.New("failed to decode image")

// CompressOptions 대표 이미지 압축 기준
type CompressOptions struct {
	MaxBytes       int // 목표 크기 (바이트)
	MaxDimension   int // 긴 변 최대 픽셀
	InitialQuality int
	MinQuality     int
	QualityStep    int
}

// DefaultCompressOptions 0.3MB, 긴 변 800px
func DefaultCompressOptions() CompressOptions {
	return CompressOptions{
		MaxBytes:       314572,
		MaxDimension:   800,
		InitialQuality: 85,
		MinQuality:     35,
		QualityStep:    10,
	}
}

type Result struct {
	Data    []byte
	Width   int
	Height  int
	Quality int
}

// Compress decodes r, shrinks it so the longest edge fits MaxDimension and re-encodes it as
// JPEG, lowering the quality until the output fits MaxBytes. If even MinQuality is too big
// the smallest encoding is returned.
func Compress(r io.Reader, opts CompressOptions) (*Result, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img = fit(img, opts.MaxDimension)
	img = flatten(img)

	step := opts.QualityStep
	if step <= 0 {
		step = 10
	}

	var best *Result
	var buf bytes.Buffer
	for quality := opts.InitialQuality; quality >= opts.MinQuality; quality -= step {
		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		if best == nil || buf.Len() < len(best.Data) {
			best = &Result{
				Data:    append([]byte(nil), buf.Bytes()...),
				Width:   img.Bounds().Dx(),
				Height:  img.Bounds().Dy(),
				Quality: quality,
			}
		}
		if buf.Len() <= opts.MaxBytes {
			break
		}
	}

	if best == nil {
		return nil, errors.New("no quality level to encode with")
	}
	return best, nil
}

// fit 긴 변 기준으로 비율 유지 축소 (확대는 하지 않음)
func fit(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= maxDimension && h <= maxDimension {
		return img
	}
	if w >= h {
		return imaging.Resize(img, maxDimension, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDimension, imaging.Lanczos)
}

// flatten JPEG에는 알파가 없으므로 흰 배경 위에 합성
func flatten(img image.Image) image.Image {
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
