// Package appcontext holds the immutable application context handed to the
// webview runtime: product metadata, the main window and the content source
// the window loads its UI from.
//
// A context is produced in two steps so that no half-configured value is
// ever observable:
//
//	b, err := appcontext.Generate(manifestYAML, assets)
//	ctx, err := b.WithContentSource(appcontext.External(u)).Build()
package appcontext
