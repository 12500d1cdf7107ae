package domain

// SweepReport accumulates per-unit outcomes of one lifecycle sweep.
// A failing unit never aborts its siblings; it is counted here instead.
type SweepReport struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
