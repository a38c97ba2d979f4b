package giscus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/theme"
)

// Default retry budget while waiting for the widget frame to appear.
const (
	DefaultAttempts = 10
	DefaultInterval = 400 * time.Millisecond
)

// Frame is a widget frame that accepts cross-origin messages.
type Frame interface {
	PostMessage(msg []byte, targetOrigin string) error
}

// Locator finds the widget frame, reporting false while it is not loaded.
type Locator func() (Frame, bool)

// Clock is the waiting primitive used between attempts.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type setConfigMessage struct {
	Giscus struct {
		SetConfig struct {
			Theme string `json:"theme"`
		} `json:"setConfig"`
	} `json:"giscus"`
}

// ThemeMessage encodes the setConfig message for the widget.
func ThemeMessage(name string) []byte {
	var m setConfigMessage
	m.Giscus.SetConfig.Theme = name
	b, _ := json.Marshal(m)
	return b
}

// Syncer delivers a theme to the widget with a bounded number of attempts.
type Syncer struct {
	Attempts int
	Interval time.Duration
	Clock    Clock
}

// NewSyncer returns a Syncer with the default budget and a real clock.
func NewSyncer() *Syncer {
	return &Syncer{Attempts: DefaultAttempts, Interval: DefaultInterval, Clock: realClock{}}
}

// Sync looks for the frame up to Attempts times, waiting Interval between
// tries. It stops at the first frame found, when the budget runs out, or
// when ctx is done. The boolean reports whether a message was delivered.
func (s *Syncer) Sync(ctx context.Context, locate Locator, themeName string) (bool, error) {
	clock := s.Clock
	if clock == nil {
		clock = realClock{}
	}
	msg := ThemeMessage(themeName)
	for attempt := 1; attempt <= s.Attempts; attempt++ {
		if frame, ok := locate(); ok {
			if err := frame.PostMessage(msg, TargetOrigin); err != nil {
				return false, fmt.Errorf("giscus: post theme: %w", err)
			}
			return true, nil
		}
		if attempt == s.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-clock.After(s.Interval):
		}
	}
	return false, nil
}

// ThemeSync adapts a Syncer to theme.WidgetSync for hydrated documents.
type ThemeSync struct {
	Syncer *Syncer
}

// SyncTheme implements theme.WidgetSync.
func (t ThemeSync) SyncTheme(ctx context.Context, doc *dom.Document, r theme.Resolved) bool {
	ok, _ := t.Syncer.Sync(ctx, LocateInDocument(doc), ThemeFor(r))
	return ok
}

// DocumentFrame is the server-side stand-in for the widget frame: the
// injected loader script. Delivering a message rewrites its data-theme so
// the widget boots with the right theme.
type DocumentFrame struct {
	el *dom.Element
}

// PostMessage implements Frame.
func (f DocumentFrame) PostMessage(msg []byte, targetOrigin string) error {
	if targetOrigin != TargetOrigin {
		return fmt.Errorf("giscus: refusing to post to %q", targetOrigin)
	}
	var m setConfigMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return fmt.Errorf("giscus: decode message: %w", err)
	}
	f.el.SetAttr("data-theme", m.Giscus.SetConfig.Theme)
	return nil
}

// LocateInDocument finds the loader script or an already rendered
// iframe.giscus-frame.
func LocateInDocument(doc *dom.Document) Locator {
	return func() (Frame, bool) {
		el, ok := doc.First(func(e *dom.Element) bool {
			if src, _ := e.Attr("src"); e.Tag() == "script" && src == ScriptSrc {
				return true
			}
			return e.Tag() == "iframe" && e.HasClass("giscus-frame")
		})
		if !ok {
			return nil, false
		}
		return DocumentFrame{el: el}, true
	}
}
