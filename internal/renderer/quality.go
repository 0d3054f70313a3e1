package renderer

// Quality maps a render quality name to an x264 preset and CRF
type Quality struct {
	Preset string
	CRF    int
}

var qualities = map[string]Quality{
	"fast":   {Preset: "ultrafast", CRF: 28},
	"medium": {Preset: "medium", CRF: 23},
	"high":   {Preset: "slow", CRF: 18},
}

// QualityFor returns the preset for name, defaulting to medium
func QualityFor(name string) Quality {
	if q, ok := qualities[name]; ok {
		return q
	}
	return qualities["medium"]
}
