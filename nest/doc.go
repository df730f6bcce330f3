// Package nest provides an ordered, bounding-box aware container and the
// clustering algebra used to recover table structure from positioned words.
//
// A Nest holds pointers to items (words, lines or other nests) and keeps an
// aggregate bounding box that is recomputed whenever its contents change.
// Derived nests share item identity with their source, so a word claimed
// through one view is the same word everywhere.
//
// Operations that produce nests of nests are package functions rather than
// methods:
//
//	cols := nest.Cluster(words, nest.MidX, 5, false)
//	mega := nest.MegaCluster(words, model.Horizontal, 5)
//	widest, _ := nest.Largest(mega.Union())
package nest
