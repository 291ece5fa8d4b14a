// Package preflight provides readiness checks for the filesystem paths a
// consolidation run depends on.
//
// The CLI runs RunAll before the pipeline starts and refuses to write when
// the input folder is unreadable, an output folder is not writable, or the
// output volume cannot hold another copy of the pending exports. The inspect
// command shows the same results without acting on them.
package preflight
