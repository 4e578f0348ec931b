// Package browser implements tabs.Bridge over HTTP against the browser
// bridge endpoint (the extension host that exposes tab enumeration and
// mutation to the daemon).
package browser
