package scene

// Frame is a single sampled video frame with interleaved RGB pixel data.
// Pixels holds Width*Height*3 bytes in row-major order.
type Frame struct {
	Timestamp float64
	Width     int
	Height    int
	Pixels    []byte
}

// Luminance converts the frame to a single-channel grayscale buffer using
// the Rec. 601 weights.
func (f Frame) Luminance() []float64 {
	gray := make([]float64, f.Width*f.Height)
	for i := 0; i < len(gray); i++ {
		r := float64(f.Pixels[i*3])
		g := float64(f.Pixels[i*3+1])
		b := float64(f.Pixels[i*3+2])
		gray[i] = 0.299*r + 0.587*g + 0.114*b
	}
	return gray
}
