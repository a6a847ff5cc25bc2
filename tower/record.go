package tower

// Record is the persisted state of a tower.
type Record struct {
	Height int `json:"height" yaml:"height"`
	Tick   int `json:"tick" yaml:"tick"`
}
