package sitengine

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// preview.js, the editor's live-preview poller.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
