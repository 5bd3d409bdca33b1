package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphics puts the console into graphics mode and hides the cursor.
// Failures are logged, not returned: a visible cursor is cosmetic. The
// returned func undoes both steps.
func EnterGraphics(l logger) (restore func()) {
	logStep(l, "KD_GRAPHICS set", "KD_GRAPHICS failed", SetGraphicsMode())
	logStep(l, "cursor hidden", "hide cursor failed", HideCursor())
	return func() {
		logStep(l, "cursor shown", "show cursor failed", ShowCursor())
		logStep(l, "KD_TEXT set", "KD_TEXT failed", RestoreTextMode())
	}
}

func logStep(l logger, ok, failed string, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
		return
	}
	l.Infof("tty", "%s", ok)
}
