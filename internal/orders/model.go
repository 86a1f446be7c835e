package orders

import "mikombo-backend/internal/models"

type CreateRequest struct {
	Items           []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	PickupMode      string             `json:"mode_retrait" validate:"required,notblank"`
	DeliveryAddress string             `json:"adresse_livraison"`
}

type StatusRequest struct {
	Status string `json:"statut" validate:"required,oneof=en_attente confirmee en_preparation prete livree retiree annulee"`
}
