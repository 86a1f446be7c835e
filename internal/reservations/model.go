package reservations

type CreateRequest struct {
	VisitDate string `json:"date_visite" validate:"required,notblank"`
	VisitTime string `json:"heure_visite" validate:"required,notblank"`
	VisitType string `json:"type_visite" validate:"required,notblank"`
	Adults    *int   `json:"nb_adultes" validate:"required,gte=0"`
	Children  *int   `json:"nb_enfants" validate:"required,gte=0"`
}

type StatusRequest struct {
	Status string `json:"statut" validate:"required,oneof=en_attente confirmee annulee terminee"`
}
