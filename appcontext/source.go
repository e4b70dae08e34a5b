package appcontext

import "net/url"

type sourceKind int

const (
	sourceUnset sourceKind = iota
	sourceBundled
	sourceExternal
)

// ContentSource tells the runtime where the window's UI comes from: either
// a directory inside the bundled assets or an external URL.
type ContentSource struct {
	kind sourceKind
	dir  string
	url  url.URL
}

// Bundled serves the UI from dir inside the bundled assets.
func Bundled(dir string) ContentSource {
	return ContentSource{kind: sourceBundled, dir: dir}
}

// External loads the UI from u. The URL is copied.
func External(u *url.URL) ContentSource {
	s := ContentSource{kind: sourceExternal}
	if u != nil {
		s.url = *u
	}
	return s
}

// IsZero reports whether no source was chosen.
func (s ContentSource) IsZero() bool { return s.kind == sourceUnset }

// IsExternal reports whether the source is a URL.
func (s ContentSource) IsExternal() bool { return s.kind == sourceExternal }

// IsBundled reports whether the source is a bundled directory.
func (s ContentSource) IsBundled() bool { return s.kind == sourceBundled }

// Dir returns the bundled directory, or "" for external sources.
func (s ContentSource) Dir() string { return s.dir }

// URL returns a copy of the external URL, or nil for bundled sources.
func (s ContentSource) URL() *url.URL {
	if s.kind != sourceExternal {
		return nil
	}
	u := s.url
	return &u
}

func (s ContentSource) String() string {
	switch s.kind {
	case sourceBundled:
		return "bundled:" + s.dir
	case sourceExternal:
		return s.url.String()
	default:
		return "unset"
	}
}
