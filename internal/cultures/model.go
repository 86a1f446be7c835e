package cultures

type UpsertRequest struct {
	CropType         string   `json:"type_culture" validate:"required,notblank"`
	Surface          *float64 `json:"surface" validate:"required,gte=0"`
	ProductionPeriod string   `json:"periode_production" validate:"required"`
	Status           string   `json:"statut" validate:"omitempty,oneof=en_preparation en_production hors_saison"`
}
