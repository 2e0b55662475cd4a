package models

// CategoryDistribution is the target share of weekly work per intensity category.
type CategoryDistribution struct {
	LIT           float64 `json:"lit"`
	Tempo         float64 `json:"tempo"`
	FTP           float64 `json:"ftp"`
	VO2Max        float64 `json:"vo2max"`
	Anaerobic     float64 `json:"anaerobic"`
	Neuromuscular float64 `json:"neuromuscular"`
	Skill         float64 `json:"skill"`
	Recovery      float64 `json:"recovery"`
}

func (d CategoryDistribution) Sum() float64 {
	return d.LIT + d.Tempo + d.FTP + d.VO2Max + d.Anaerobic + d.Neuromuscular + d.Skill + d.Recovery
}
