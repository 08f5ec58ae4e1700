// Package report renders scan results for humans and machines.
//
// Three writers share one interface: SimpleWriter produces plain text
// for the terminal, JSONWriter produces machine-readable output for
// tool integration, and MarkdownWriter produces a shareable document.
// MultiWriter fans a single report out to several destinations, such
// as the terminal and a file at the same time.
package report
