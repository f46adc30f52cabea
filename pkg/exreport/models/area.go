package models

// Area is a rectangular cell range.
type Area struct {
	// R1 is the top row (0-based).
	R1 int `json:"r1" yaml:"r1"`
	// C1 is the left column (0-based).
	C1 int `json:"c1" yaml:"c1"`
	// R2 is the bottom row (0-based, inclusive).
	R2 int `json:"r2" yaml:"r2"`
	// C2 is the right column (0-based, inclusive).
	C2 int `json:"c2" yaml:"c2"`
}

// Rows returns the number of rows covered.
func (a Area) Rows() int { return a.R2 - a.R1 + 1 }

// Cols returns the number of columns covered.
func (a Area) Cols() int { return a.C2 - a.C1 + 1 }

// Contains reports whether the cell at (row, col) lies inside the area.
func (a Area) Contains(row, col int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}

// Union returns the smallest area covering both a and b.
func (a Area) Union(b Area) Area {
	return Area{
		R1: min(a.R1, b.R1),
		C1: min(a.C1, b.C1),
		R2: max(a.R2, b.R2),
		C2: max(a.C2, b.C2),
	}
}
