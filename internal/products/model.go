package products

type UpsertRequest struct {
	Name        string   `json:"nom" validate:"required,notblank"`
	Category    string   `json:"categorie" validate:"required,notblank"`
	Description string   `json:"description"`
	Price       *float64 `json:"prix" validate:"required,gte=0"`
	Unit        string   `json:"unite" validate:"required,notblank"`
	Stock       *float64 `json:"stock" validate:"required,gte=0"`
	Seasonal    bool     `json:"saison"`
	Visible     *bool    `json:"visible"`
}

func (r UpsertRequest) visible() bool {
	if r.Visible == nil {
		return true
	}
	return *r.Visible
}
