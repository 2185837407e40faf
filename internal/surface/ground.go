package surface

// Names of the ground surfaces a ball can come to rest on.
const (
	Background  = "background"
	FirstCut    = "first_cut"
	Rough       = "rough"
	DeepRough   = "deep_rough"
	Water       = "water"
	Bunker      = "bunker"
	Fairway     = "fairway"
	Green       = "green"
	Tee         = "tee"
	OutOfBounds = "out_of_bounds"
)

// RoughTiers lists the rough surfaces from the outermost (widest) to the innermost.
var RoughTiers = []string{DeepRough, Rough, FirstCut}

// Properties describes a ground surface.
type Properties struct {
	Name      string
	IsPenalty bool

	Color       [4]float32
	ColorJitter float32 // max relative per-vertex brightness change
	Texture     string  // path relative to the texture directory; empty for flat color

	// LayerHeight lifts the surface above the ones drawn before it to avoid z-fighting.
	LayerHeight float64
	// RollFriction is handed to the simulator for ground roll.
	RollFriction float64
}

var grounds = map[string]Properties{
	Background: {
		Color: [4]float32{0.30, 0.45, 0.22, 1}, ColorJitter: 0.04,
		LayerHeight: 0.000, RollFriction: 0.35,
	},
	DeepRough: {
		Color: [4]float32{0.24, 0.42, 0.18, 1}, ColorJitter: 0.06, Texture: "deep_rough.png",
		LayerHeight: 0.010, RollFriction: 0.60,
	},
	Rough: {
		Color: [4]float32{0.28, 0.50, 0.20, 1}, ColorJitter: 0.05, Texture: "rough.png",
		LayerHeight: 0.015, RollFriction: 0.45,
	},
	FirstCut: {
		Color: [4]float32{0.33, 0.58, 0.24, 1}, ColorJitter: 0.04,
		LayerHeight: 0.020, RollFriction: 0.30,
	},
	Bunker: {
		Color: [4]float32{0.86, 0.79, 0.58, 1}, ColorJitter: 0.05, Texture: "sand.png",
		LayerHeight: 0.025, RollFriction: 0.80,
	},
	Fairway: {
		Color: [4]float32{0.36, 0.66, 0.27, 1}, ColorJitter: 0.03, Texture: "fairway.png",
		LayerHeight: 0.030, RollFriction: 0.18,
	},
	Water: {
		IsPenalty: true,
		Color: [4]float32{0.18, 0.40, 0.62, 0.85}, ColorJitter: 0.02, Texture: "water.png",
		LayerHeight: 0.040, RollFriction: 1.00,
	},
	Tee: {
		Color: [4]float32{0.38, 0.70, 0.30, 1}, ColorJitter: 0.02,
		LayerHeight: 0.050, RollFriction: 0.15,
	},
	Green: {
		Color: [4]float32{0.42, 0.76, 0.33, 1}, ColorJitter: 0.02, Texture: "green.png",
		LayerHeight: 0.060, RollFriction: 0.08,
	},
	OutOfBounds: {
		IsPenalty: true,
		Color: [4]float32{0.30, 0.30, 0.30, 1},
		RollFriction: 1.00,
	},
}

func init() {
	for name, p := range grounds {
		p.Name = name
		grounds[name] = p
	}
}

// Ground returns the properties of a named surface, or plain rough when unknown.
func Ground(name string) Properties {
	p, _ := ResolveGround(name)
	return p
}

// ResolveGround is Ground that also reports whether the name was known.
func ResolveGround(name string) (Properties, bool) {
	if p, ok := grounds[name]; ok {
		return p, true
	}
	return grounds[Rough], false
}

// IsPenalty reports whether coming to rest on the named surface costs a penalty.
func IsPenalty(name string) bool {
	return Ground(name).IsPenalty
}
