package models

// Model identifies one of the supported Grok image generation models.
type Model string

const (
	// ModelImaginePro is the default, higher-quality model.
	ModelImaginePro Model = "grok-imagine-image-pro"
	// ModelImagine is the faster alternative.
	ModelImagine Model = "grok-imagine-image"
)

// Models lists the selectable model identifiers in display order.
func Models() []Model {
	return []Model{ModelImaginePro, ModelImagine}
}

// ParseModel maps a display string back onto a Model, defaulting to
// ModelImaginePro for anything unrecognised.
func ParseModel(s string) Model {
	switch s {
	case string(ModelImagine):
		return ModelImagine
	default:
		return ModelImaginePro
	}
}

func (m Model) String() string {
	return string(m)
}
