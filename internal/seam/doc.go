// Package seam finds minimum-energy seams on an energy surface.
//
// A vertical seam holds one column index per row, top to bottom; a
// horizontal seam holds one row index per column, left to right. Adjacent
// entries differ by at most one, so a seam is an 8-connected path.
//
// The search is a shortest path over the implicit layered DAG in which node
// (x, y) has edges to (x-1, y+1), (x, y+1) and (x+1, y+1), each weighted by
// the energy of its destination. Energies are non-negative, so a single
// row-by-row relaxation is optimal. Horizontal seams reuse the same dynamic
// program on the transposed surface.
//
// Complexity:
//
//	Time   = O(W·H)
//	Memory = O(W·H) for the distTo and edgeTo tables
package seam
