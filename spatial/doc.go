// Package spatial provides a static spatial index over graph nodes.
//
// Index is built once from a node list on a gonum kd-tree and answers
// rectangle queries in graph space. Rebuild it after moving nodes.
package spatial
