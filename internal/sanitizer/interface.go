package sanitizer

// lineState tracks the state bits driving the Markdown sanitize pass.
// Each bit's lifetime is documented at its use site in linefilter.go.
type lineState struct {
	inCodeFence     bool
	fenceChar       byte
	fenceLen        int
	inSVG           bool
	inFooter        bool
	inTrailingLinks bool
	sawContent      bool
	sawHeading      bool
	skippingFront   bool
	frontDecided    bool
	lastWasBlank    bool
}
