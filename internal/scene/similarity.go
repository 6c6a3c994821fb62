package scene

import (
	"bytes"
	"math"
)

const (
	// Comparison scale for structural similarity. Frames are resampled to
	// this width before SSIM so the score is resolution-independent.
	defaultCompareWidth = 128

	// SSIM sliding window size.
	defaultSSIMWindow = 8

	// Bins per color channel for the joint histogram. 8 bins per channel
	// gives a 512-bucket joint histogram.
	defaultHistogramBins = 8
)

// SimilarityEngine computes dissimilarity scores between consecutive frames
// using two independent metrics: structural similarity on luminance and
// correlation of joint color histograms. Both scores are in [0, 1] where
// higher means more different.
type SimilarityEngine struct {
	compareWidth  int
	ssimWindow    int
	histogramBins int
}

func NewSimilarityEngine() *SimilarityEngine {
	return &SimilarityEngine{
		compareWidth:  defaultCompareWidth,
		ssimWindow:    defaultSSIMWindow,
		histogramBins: defaultHistogramBins,
	}
}

// StructuralConfidence returns 1 - SSIM for the pair of frames. Identical
// frames score 0, completely dissimilar frames approach 1.
func (e *SimilarityEngine) StructuralConfidence(prev, curr Frame) float64 {
	if prev.Width == curr.Width && prev.Height == curr.Height && bytes.Equal(prev.Pixels, curr.Pixels) {
		return 0
	}

	w, h := e.compareSize(prev)
	a := resampleGray(prev.Luminance(), prev.Width, prev.Height, w, h)
	b := resampleGray(curr.Luminance(), curr.Width, curr.Height, w, h)

	similarity := ssim(a, b, w, h, e.ssimWindow)
	return clamp01(1.0 - similarity)
}

// HistogramConfidence returns 1 - correlation between the two frames' joint
// color histograms. A constant-color frame compared to itself is fully
// correlated and scores 0; the degenerate zero-variance case never divides
// by zero.
func (e *SimilarityEngine) HistogramConfidence(prev, curr Frame) float64 {
	a := e.jointHistogram(prev)
	b := e.jointHistogram(curr)

	normalizeUnitRange(a)
	normalizeUnitRange(b)

	correlation := pearson(a, b)
	return clamp01(1.0 - correlation)
}

func (e *SimilarityEngine) compareSize(f Frame) (int, int) {
	w := e.compareWidth
	if f.Width < w {
		w = f.Width
	}
	h := f.Height * w / f.Width
	if h < e.ssimWindow {
		h = e.ssimWindow
	}
	return w, h
}

// jointHistogram bins all three channels together into a single
// bins^3-bucket histogram.
func (e *SimilarityEngine) jointHistogram(f Frame) []float64 {
	bins := e.histogramBins
	shift := 8 - bitsFor(bins)
	hist := make([]float64, bins*bins*bins)

	for i := 0; i < f.Width*f.Height; i++ {
		r := int(f.Pixels[i*3]) >> shift
		g := int(f.Pixels[i*3+1]) >> shift
		b := int(f.Pixels[i*3+2]) >> shift
		hist[(r*bins+g)*bins+b]++
	}
	return hist
}

func bitsFor(bins int) int {
	n := 0
	for v := 1; v < bins; v <<= 1 {
		n++
	}
	return n
}

// normalizeUnitRange rescales values to [0, 1] in place. A constant
// histogram stays constant rather than producing NaNs.
func normalizeUnitRange(hist []float64) {
	min, max := hist[0], hist[0]
	for _, v := range hist {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return
	}
	for i := range hist {
		hist[i] = (hist[i] - min) / (max - min)
	}
}

// pearson computes the correlation coefficient between two equal-length
// vectors. Zero-variance inputs compare as fully correlated when equal and
// fully uncorrelated otherwise.
func pearson(a, b []float64) float64 {
	n := float64(len(a))
	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / n
	meanB := sumB / n

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		if equalVectors(a, b) {
			return 1
		}
		return 0
	}

	return cov / math.Sqrt(varA*varB)
}

func equalVectors(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// resampleGray scales a grayscale buffer to dstW x dstH using nearest
// neighbor sampling.
func resampleGray(src []float64, srcW, srcH, dstW, dstH int) []float64 {
	if srcW == dstW && srcH == dstH {
		return src
	}
	dst := make([]float64, dstW*dstH)
	for y := 0; y < dstH; y++ {
		sy := y * srcH / dstH
		for x := 0; x < dstW; x++ {
			sx := x * srcW / dstW
			dst[y*dstW+x] = src[sy*srcW+sx]
		}
	}
	return dst
}

// ssim computes the mean structural similarity index over non-overlapping
// windows of the two grayscale buffers.
func ssim(a, b []float64, w, h, window int) float64 {
	const (
		c1 = (0.01 * 255) * (0.01 * 255)
		c2 = (0.03 * 255) * (0.03 * 255)
	)

	var total float64
	var count int

	for wy := 0; wy+window <= h; wy += window {
		for wx := 0; wx+window <= w; wx += window {
			var sumA, sumB float64
			n := float64(window * window)

			for y := wy; y < wy+window; y++ {
				for x := wx; x < wx+window; x++ {
					sumA += a[y*w+x]
					sumB += b[y*w+x]
				}
			}
			muA := sumA / n
			muB := sumB / n

			var varA, varB, cov float64
			for y := wy; y < wy+window; y++ {
				for x := wx; x < wx+window; x++ {
					da := a[y*w+x] - muA
					db := b[y*w+x] - muB
					varA += da * da
					varB += db * db
					cov += da * db
				}
			}
			varA /= n - 1
			varB /= n - 1
			cov /= n - 1

			numerator := (2*muA*muB + c1) * (2*cov + c2)
			denominator := (muA*muA + muB*muB + c1) * (varA + varB + c2)

			total += numerator / denominator
			count++
		}
	}

	if count == 0 {
		return 1
	}
	return total / float64(count)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
