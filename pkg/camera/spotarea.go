package camera

// The spot metering area travels as a single packed word: the high byte
// holds the X percentage, the low byte the Y percentage, both 0..100.

func packSpotArea(x, y, frameW, frameH int) uint32 {
	px := clampPercent(x * 100 / frameW)
	py := clampPercent(y * 100 / frameH)
	return uint32(px)<<8 | uint32(py)
}

func unpackSpotArea(packed uint32, frameW, frameH int) (x, y int) {
	px := clampPercent(int(packed >> 8 & 0xFF))
	py := clampPercent(int(packed & 0xFF))
	return px * frameW / 100, py * frameH / 100
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SpotArea returns the current spot metering point in frame pixel
// coordinates.
func (c *Control) SpotArea() (x, y int, err error) {
	if !c.caps.SupportsSpotMetering() {
		return 0, 0, ErrUnsupported
	}
	if !c.ParametersReady() {
		return 0, 0, ErrNotReady
	}
	p, ok := c.reg.Get(ParamSpotArea)
	if !ok {
		return 0, 0, ErrNotReady
	}
	c.mu.Lock()
	w, h := c.frameWidth, c.frameHeight
	c.mu.Unlock()
	x, y = unpackSpotArea(p.Uint(), w, h)
	return x, y, nil
}

// SetSpotArea moves the spot metering point. Coordinates are frame
// pixels; out-of-frame values clamp to the frame edge.
func (c *Control) SetSpotArea(x, y int) error {
	if !c.caps.SupportsSpotMetering() {
		return ErrUnsupported
	}
	if !c.ParametersReady() {
		return ErrNotReady
	}
	c.mu.Lock()
	w, h := c.frameWidth, c.frameHeight
	c.mu.Unlock()
	packed := packSpotArea(x, y, w, h)
	if err := c.reg.SetRaw(ParamSpotArea, packed); err != nil {
		return err
	}
	return c.link.SendParam(ParamSpotArea, packed)
}

// SetFrameSize updates the video frame dimensions used to map spot
// metering coordinates.
func (c *Control) SetFrameSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	c.frameWidth = width
	c.frameHeight = height
	c.mu.Unlock()
}
