package animals

type UpsertRequest struct {
	Species     string `json:"espece" validate:"required,notblank"`
	Name        string `json:"nom" validate:"required,notblank"`
	Enclosure   string `json:"enclos" validate:"required,notblank"`
	Health      string `json:"etat_sante"`
	Description string `json:"description"`
	Visible     *bool  `json:"visible"`
}
