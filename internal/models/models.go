package models

import (
	"strings"
	"time"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	LastName     string    `bson:"nom" json:"nom"`
	FirstName    string    `bson:"prenom" json:"prenom"`
	Phone        string    `bson:"telephone" json:"telephone"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Customer is the copy of a user's contact details stored on reservations
// and orders at creation time. Later profile edits do not touch it.
type Customer struct {
	UserID string `bson:"user_id" json:"user_id"`
	Name   string `bson:"user_name" json:"user_name"`
	Email  string `bson:"user_email" json:"user_email"`
	Phone  string `bson:"user_telephone" json:"user_telephone"`
}

func SnapshotOf(u User) Customer {
	return Customer{
		UserID: u.ID,
		Name:   u.FullName(),
		Email:  u.Email,
		Phone:  u.Phone,
	}
}

type Product struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"nom" json:"nom"`
	Category    string    `bson:"categorie" json:"categorie"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"prix" json:"prix"`
	Unit        string    `bson:"unite" json:"unite"`
	Stock       float64   `bson:"stock" json:"stock"`
	Seasonal    bool      `bson:"saison" json:"saison"`
	Photos      []string  `bson:"photos" json:"photos"`
	Visible     bool      `bson:"visible" json:"visible"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

const DefaultHealth = "Bonne santé"

type Animal struct {
	ID          string    `bson:"id" json:"id"`
	Species     string    `bson:"espece" json:"espece"`
	Name        string    `bson:"nom" json:"nom"`
	Enclosure   string    `bson:"enclos" json:"enclos"`
	Health      string    `bson:"etat_sante" json:"etat_sante"`
	Photo       string    `bson:"photo" json:"photo"`
	Description string    `bson:"description" json:"description"`
	Visible     bool      `bson:"visible" json:"visible"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

const (
	CulturePreparing    = "en_preparation"
	CultureInProduction = "en_production"
	CultureOffSeason    = "hors_saison"
)

type Culture struct {
	ID               string    `bson:"id" json:"id"`
	CropType         string    `bson:"type_culture" json:"type_culture"`
	Surface          float64   `bson:"surface" json:"surface"`
	ProductionPeriod string    `bson:"periode_production" json:"periode_production"`
	Status           string    `bson:"statut" json:"statut"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

const (
	ReservationPending   = "en_attente"
	ReservationConfirmed = "confirmee"
	ReservationCancelled = "annulee"
	ReservationCompleted = "terminee"
)

type Reservation struct {
	ID         string `bson:"id" json:"id"`
	Customer   `bson:",inline"`
	VisitDate  string    `bson:"date_visite" json:"date_visite"`
	VisitTime  string    `bson:"heure_visite" json:"heure_visite"`
	VisitType  string    `bson:"type_visite" json:"type_visite"`
	Adults     int       `bson:"nb_adultes" json:"nb_adultes"`
	Children   int       `bson:"nb_enfants" json:"nb_enfants"`
	TotalPrice float64   `bson:"prix_total" json:"prix_total"`
	Status     string    `bson:"statut" json:"statut"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

const (
	OrderPending   = "en_attente"
	OrderConfirmed = "confirmee"
	OrderPreparing = "en_preparation"
	OrderReady     = "prete"
	OrderDelivered = "livree"
	OrderCollected = "retiree"
	OrderCancelled = "annulee"
)

type OrderItem struct {
	ProductID string  `bson:"produit_id" json:"produit_id" validate:"required"`
	Name      string  `bson:"nom" json:"nom" validate:"required"`
	Price     float64 `bson:"prix" json:"prix" validate:"gte=0"`
	Quantity  float64 `bson:"quantite" json:"quantite" validate:"gt=0"`
	Unit      string  `bson:"unite" json:"unite"`
}

type Order struct {
	ID              string `bson:"id" json:"id"`
	Customer        `bson:",inline"`
	Items           []OrderItem `bson:"items" json:"items"`
	PickupMode      string      `bson:"mode_retrait" json:"mode_retrait"`
	DeliveryAddress string      `bson:"adresse_livraison" json:"adresse_livraison"`
	Status          string      `bson:"statut" json:"statut"`
	Total           float64     `bson:"total" json:"total"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updated_at"`
}

type ContactMessage struct {
	Name      string    `bson:"nom" json:"nom"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"telephone" json:"telephone"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
