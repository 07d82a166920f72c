package renderer

// PassSchedule spreads the per-pixel sample budget over progressive passes.
// Sample counts are cumulative: after pass p every pixel holds SamplesAfter(p).
type PassSchedule struct {
	InitialSamples int // Samples per pixel after the first pass
	MaxSamples     int // Samples per pixel after the last pass
	Passes         int // Number of passes, each adding at least one sample
}

// NewPassSchedule creates a schedule reaching maxSamples in at most passes
// passes. Passes that could not add a sample are dropped, and initialSamples
// is clamped to [1, maxSamples].
func NewPassSchedule(maxSamples, passes, initialSamples int) PassSchedule {
	initialSamples = max(1, min(initialSamples, maxSamples))
	passes = max(1, min(passes, maxSamples-initialSamples+1))
	return PassSchedule{
		InitialSamples: initialSamples,
		MaxSamples:     maxSamples,
		Passes:         passes,
	}
}

// SamplesAfter returns the cumulative samples per pixel once pass is done.
// Pass 0 is the empty image.
func (s PassSchedule) SamplesAfter(pass int) int {
	switch {
	case pass <= 0:
		return 0
	case pass >= s.Passes:
		return s.MaxSamples
	case pass == 1:
		return s.InitialSamples
	}

	// Linear steps from the initial pass; the last pass absorbs the remainder
	step := (s.MaxSamples - s.InitialSamples) / (s.Passes - 1)
	return s.InitialSamples + (pass-1)*step
}

// SamplesFor returns the samples per pixel added by pass
func (s PassSchedule) SamplesFor(pass int) int {
	return s.SamplesAfter(pass) - s.SamplesAfter(pass-1)
}

// PassProgress reports a finished pass. Every pixel of the framebuffer holds
// SamplesPerPixel samples and Stats covers all passes so far.
type PassProgress struct {
	Pass, Passes    int
	SamplesPerPixel int
	Stats           RenderStats
	Framebuffer     *Framebuffer
}

// IsLast reports whether this was the final pass of the render
func (p PassProgress) IsLast() bool {
	return p.Pass == p.Passes
}
