package lighting

// Attenuation holds the distance falloff terms
// 1 / (Constant + Linear*d + Quadratic*d*d).
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// attenuationTable maps an approximate light range to falloff terms.
var attenuationTable = []struct {
	Range float32
	Attenuation
}{
	{7, Attenuation{1, 0.7, 1.8}},
	{13, Attenuation{1, 0.35, 0.44}},
	{20, Attenuation{1, 0.22, 0.20}},
	{32, Attenuation{1, 0.14, 0.07}},
	{50, Attenuation{1, 0.09, 0.032}},
	{65, Attenuation{1, 0.07, 0.017}},
	{100, Attenuation{1, 0.045, 0.0075}},
	{160, Attenuation{1, 0.027, 0.0028}},
	{200, Attenuation{1, 0.022, 0.0019}},
	{325, Attenuation{1, 0.014, 0.0007}},
	{600, Attenuation{1, 0.007, 0.0002}},
	{3250, Attenuation{1, 0.0014, 0.000007}},
}

// DefaultAttenuation covers roughly 50 units.
var DefaultAttenuation = Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}

// AttenuationForRange returns the terms of the smallest tabulated range
// that still reaches distance. Distances beyond the table get the widest
// entry.
func AttenuationForRange(distance float32) Attenuation {
	for _, e := range attenuationTable {
		if distance <= e.Range {
			return e.Attenuation
		}
	}
	return attenuationTable[len(attenuationTable)-1].Attenuation
}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	den := a.Constant + a.Linear*d + a.Quadratic*d*d
	if den <= 0 {
		return 1
	}
	return 1 / den
}
