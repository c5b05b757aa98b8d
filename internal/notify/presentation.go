package notify

import "sync"

// Presentation controls how a notification is displayed while the picker is
// in the foreground.
type Presentation struct {
	ShowAlert  bool
	ShowBanner bool
	ShowList   bool
	PlaySound  bool
	SetBadge   bool
}

// DefaultPresentation shows and sounds every notification without touching
// the badge count.
func DefaultPresentation() Presentation {
	return Presentation{
		ShowAlert:  true,
		ShowBanner: true,
		ShowList:   true,
		PlaySound:  true,
	}
}

var (
	presentationOnce sync.Once
	presentation     = DefaultPresentation()
	presentationMu   sync.RWMutex
)

// Init installs the process-wide presentation policy. It must be called once
// during startup; later calls are ignored and report false. There is no
// teardown.
func Init(p Presentation) bool {
	applied := false
	presentationOnce.Do(func() {
		presentationMu.Lock()
		presentation = p
		presentationMu.Unlock()
		applied = true
	})
	return applied
}

// CurrentPresentation returns the installed policy, or the default before Init.
func CurrentPresentation() Presentation {
	presentationMu.RLock()
	defer presentationMu.RUnlock()
	return presentation
}
