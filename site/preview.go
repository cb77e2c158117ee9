package site

import (
	"sync"

	"github.com/imobkit/sitengine/catalog"
)

// PreviewState is one emission of the live-preview channel: the latest
// template and config, combined. Either side may be nil before its first
// Set; subscribers tolerate partial state during startup. Revision bumps on
// every Set so a consumer can detect that it coalesced intermediate states.
type PreviewState struct {
	Template *catalog.Definition
	Config   *Config
	Revision uint64
}

// PreviewHub is the in-memory synchronization point between the editor
// surface and the preview surface. Template and config are independently
// settable last-value slots; every set emits the combined pair to all
// subscribers. The hub persists nothing; durable storage is the caller's
// responsibility.
type PreviewHub struct {
	mu       sync.Mutex
	state    PreviewState
	subs     map[chan PreviewState]struct{}
	templGen uint64
}

// NewPreviewHub returns an empty hub.
func NewPreviewHub() *PreviewHub {
	return &PreviewHub{subs: make(map[chan PreviewState]struct{})}
}

// SetTemplate stores a new template value and emits the combined state.
func (h *PreviewHub) SetTemplate(def *catalog.Definition) {
	h.mu.Lock()
	h.state.Template = def
	h.emitLocked()
	h.mu.Unlock()
}

// BeginTemplateLoad reserves a load generation. A slow asynchronous load
// completes with CompleteTemplateLoad, which drops the result if a newer
// load began in the meantime (last-write-wins guarding for stale fetches).
func (h *PreviewHub) BeginTemplateLoad() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.templGen++
	return h.templGen
}

// CompleteTemplateLoad applies a loaded template only if gen is still the
// latest load generation. It reports whether the value was applied.
func (h *PreviewHub) CompleteTemplateLoad(gen uint64, def *catalog.Definition) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.templGen {
		return false
	}
	h.state.Template = def
	h.emitLocked()
	return true
}

// SetConfig stores a new config value and emits the combined state.
func (h *PreviewHub) SetConfig(cfg *Config) {
	h.mu.Lock()
	h.state.Config = cfg
	h.emitLocked()
	h.mu.Unlock()
}

// State returns the current combined pair without subscribing.
func (h *PreviewHub) State() PreviewState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Subscribe registers a listener. The returned channel immediately carries
// the current state if either slot has been set, then one emission per Set.
// A subscriber that falls behind coalesces to the latest state: delivery
// drops the stale buffered emission rather than blocking the setter.
func (h *PreviewHub) Subscribe() (<-chan PreviewState, func()) {
	ch := make(chan PreviewState, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	if h.state.Revision > 0 {
		ch <- h.state
	}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *PreviewHub) emitLocked() {
	h.state.Revision++
	for ch := range h.subs {
		select {
		case ch <- h.state:
		default:
			// Drop the stale buffered state, replace with latest.
			select {
			case <-ch:
			default:
			}
			ch <- h.state
		}
	}
}
