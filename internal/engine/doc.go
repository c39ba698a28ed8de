// Package engine contains the core scanning logic for credscan. It traverses
// the tree under a root, filters files, runs the rule set over each one and
// returns structured findings. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
