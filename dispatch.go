package plot

// Each call* method routes one operation through the bindings resolved at
// registration: the driver's own implementation or the generic one.

func (p *Plotter) specific(op Op) bool {
	return p.drv != nil && p.bind[op] == BindingSpecific
}

func (p *Plotter) callInitialize() error {
	if p.specific(OpInitialize) {
		return p.drv.(Initializer).Initialize(p)
	}
	return Generic.Initialize(p)
}

func (p *Plotter) callTerminate() error {
	if p.specific(OpTerminate) {
		return p.drv.(Terminator).Terminate(p)
	}
	return Generic.Terminate(p)
}

func (p *Plotter) callBeginPage() error {
	if p.specific(OpBeginPage) {
		return p.drv.(PageBeginner).BeginPage(p)
	}
	return Generic.BeginPage(p)
}

func (p *Plotter) callErasePage() error {
	if p.specific(OpErasePage) {
		return p.drv.(PageEraser).ErasePage(p)
	}
	return Generic.ErasePage(p)
}

func (p *Plotter) callEndPage() error {
	if p.specific(OpEndPage) {
		return p.drv.(PageEnder).EndPage(p)
	}
	return Generic.EndPage(p)
}

func (p *Plotter) callPushState() {
	if p.specific(OpPushState) {
		p.drv.(StatePusher).PushState(p)
		return
	}
	Generic.PushState(p)
}

func (p *Plotter) callPopState() {
	if p.specific(OpPopState) {
		p.drv.(StatePopper).PopState(p)
		return
	}
	Generic.PopState(p)
}

func (p *Plotter) callPaintPath(path *Path) error {
	if p.specific(OpPaintPath) {
		return p.drv.(PathPainter).PaintPath(p, path)
	}
	return Generic.PaintPath(p, path)
}

func (p *Plotter) callPaintPaths(paths []*Path) (bool, error) {
	if p.specific(OpPaintPaths) {
		return p.drv.(PathsPainter).PaintPaths(p, paths)
	}
	return Generic.PaintPaths(p, paths)
}

func (p *Plotter) callPathIsFlushable(path *Path) bool {
	if p.specific(OpPathIsFlushable) {
		return p.drv.(FlushabilityReporter).PathIsFlushable(p, path)
	}
	return Generic.PathIsFlushable(p, path)
}

func (p *Plotter) callMaybePrepaintSegments(path *Path, prev int) error {
	if p.specific(OpMaybePrepaintSegments) {
		return p.drv.(SegmentPrepainter).MaybePrepaintSegments(p, path, prev)
	}
	return Generic.MaybePrepaintSegments(p, path, prev)
}

func (p *Plotter) callPaintMarker(at Point, m Marker, size float64) (bool, error) {
	if p.specific(OpPaintMarker) {
		return p.drv.(MarkerPainter).PaintMarker(p, at, m, size)
	}
	return Generic.PaintMarker(p, at, m, size)
}

func (p *Plotter) callPaintPoint(at Point) error {
	if p.specific(OpPaintPoint) {
		return p.drv.(PointPainter).PaintPoint(p, at)
	}
	return Generic.PaintPoint(p, at)
}

func (p *Plotter) callPaintTextWithEscapes(s string, h HJust, v VJust) (float64, error) {
	if p.specific(OpPaintTextWithEscapes) {
		return p.drv.(EscapedTextPainter).PaintTextWithEscapes(p, s, h, v)
	}
	return Generic.PaintTextWithEscapes(p, s, h, v)
}

func (p *Plotter) callPaintText(s string, h HJust, v VJust) (float64, error) {
	if p.specific(OpPaintText) {
		return p.drv.(TextPainter).PaintText(p, s, h, v)
	}
	return Generic.PaintText(p, s, h, v)
}

func (p *Plotter) callTextWidth(s string) float64 {
	if p.specific(OpGetTextWidth) {
		return p.drv.(TextMeasurer).TextWidth(p, s)
	}
	return Generic.TextWidth(p, s)
}

func (p *Plotter) callRetrieveFont() bool {
	if p.specific(OpRetrieveFont) {
		return p.drv.(FontRetriever).RetrieveFont(p)
	}
	return Generic.RetrieveFont(p)
}

func (p *Plotter) callFlushOutput() error {
	if p.specific(OpFlushOutput) {
		return p.drv.(OutputFlusher).FlushOutput(p)
	}
	return Generic.FlushOutput(p)
}

func (p *Plotter) callWarning(msg string) {
	if p.specific(OpWarning) {
		p.drv.(Warner).Warning(p, msg)
		return
	}
	Generic.Warning(p, msg)
}

func (p *Plotter) callError(err error) {
	if p.specific(OpError) {
		p.drv.(ErrorHandler).Error(p, err)
		return
	}
	Generic.Error(p, err)
}
