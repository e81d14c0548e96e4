package robot

import (
	"sync"

	"github.com/nikbrunner/mbm/internal/browser"
)

// FakeSharer records shared links instead of using the clipboard.
type FakeSharer struct {
	mu     sync.Mutex
	shared [][]browser.Link
}

// Share implements browser.Sharer.
func (s *FakeSharer) Share(links []browser.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shared = append(s.shared, append([]browser.Link(nil), links...))
	return nil
}

// Shares returns every share in order.
func (s *FakeSharer) Shares() [][]browser.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shared
}

// Last returns the most recent share.
func (s *FakeSharer) Last() []browser.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.shared) == 0 {
		return nil
	}
	return s.shared[len(s.shared)-1]
}

// FakeOpener records URLs handed to the system browser.
type FakeOpener struct {
	mu   sync.Mutex
	urls []string
}

// Open records url.
func (o *FakeOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return nil
}

// URLs returns the opened URLs in order.
func (o *FakeOpener) URLs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.urls
}
