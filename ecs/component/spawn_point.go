package component

// SpawnPoint is where a dead player is put back.
type SpawnPoint struct {
	X float64
	Y float64
}

var SpawnPointComponent = NewComponent[SpawnPoint]()
