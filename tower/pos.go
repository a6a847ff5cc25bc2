package tower

import "fmt"

// Pos is a block position. Y grows upward.
type Pos struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Above returns the position n blocks above p.
func (p Pos) Above(n int) Pos {
	return Pos{X: p.X, Y: p.Y + n, Z: p.Z}
}

// Below returns the position right under p.
func (p Pos) Below() Pos {
	return p.Above(-1)
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}
