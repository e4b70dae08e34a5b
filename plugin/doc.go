// Package plugin defines the lifecycle contract of shell plugins and the
// ordered registry that drives them.
//
// Plugins are started in registration order and stopped in reverse. A
// plugin may additionally expose objects to the webview (Binder), receive
// the runtime host once the window exists (Attacher) and describe itself
// for the startup summary (Describable).
package plugin
