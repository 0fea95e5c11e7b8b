package physics

import "github.com/san-kum/ballpit/internal/dynamo"

// Tuning holds the constants of the physics rules. Distances are pixels,
// speeds pixels per frame.
type Tuning struct {
	Gravity       float64 `yaml:"gravity"`
	Damping       float64 `yaml:"damping"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MinSpeed      float64 `yaml:"min_speed"`
	RestTolerance float64 `yaml:"rest_tolerance"`
	WallBounce    float64 `yaml:"wall_bounce"`
	FloorFriction float64 `yaml:"floor_friction"`
	DragGain      float64 `yaml:"drag_gain"`

	Restitution       float64 `yaml:"restitution"`
	MinImpulse        float64 `yaml:"min_impulse"`
	CoincidentDist    float64 `yaml:"coincident_dist"`
	Jitter            float64 `yaml:"jitter"`
	Slop              float64 `yaml:"slop"`
	CorrectionPercent float64 `yaml:"correction_percent"`

	FieldStrength  float64 `yaml:"field_strength"`
	FieldMin       float64 `yaml:"field_min"`
	FieldMax       float64 `yaml:"field_max"`
	FieldRefRadius float64 `yaml:"field_ref_radius"`

	MergeRestSpeed float64 `yaml:"merge_rest_speed"`
	MergeOverlap   float64 `yaml:"merge_overlap"`
	MergeLighten   uint8   `yaml:"merge_lighten"`

	Fragments        int     `yaml:"fragments"`
	FragmentMinSpeed float64 `yaml:"fragment_min_speed"`
	FragmentMaxSpeed float64 `yaml:"fragment_max_speed"`

	MinRadius     int     `yaml:"min_radius"`
	MaxRadius     int     `yaml:"max_radius"`
	MaxSpawnSpeed float64 `yaml:"max_spawn_speed"`
	SpecialChance float64 `yaml:"special_chance"`
}

var (
	Gold = dynamo.RGB{R: 255, G: 215, B: 0}
	Red  = dynamo.RGB{R: 255, G: 50, B: 50}
)

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:       0.5,
		Damping:       0.997,
		MaxSpeed:      1000,
		MinSpeed:      0.1,
		RestTolerance: 1,
		WallBounce:    0.7,
		FloorFriction: 0.95,
		DragGain:      0.3,

		Restitution:       0.8,
		MinImpulse:        0.01,
		CoincidentDist:    0.01,
		Jitter:            0.1,
		Slop:              0.01,
		CorrectionPercent: 0.8,

		FieldStrength:  4.0,
		FieldMin:       0.5,
		FieldMax:       8.0,
		FieldRefRadius: 40,

		MergeRestSpeed: 1,
		MergeOverlap:   0.5,
		MergeLighten:   20,

		Fragments:        8,
		FragmentMinSpeed: 5,
		FragmentMaxSpeed: 10,

		MinRadius:     10,
		MaxRadius:     40,
		MaxSpawnSpeed: 3,
		SpecialChance: 0.05,
	}
}
