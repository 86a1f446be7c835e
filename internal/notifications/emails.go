package notifications

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"

	"mikombo-backend/internal/models"
)

const (
	reservationSubject = "Confirmation de réservation - Mikombo Park"
	orderSubject       = "Confirmation de commande - Mikombo Park"
)

const layoutTemplate = `{{define "open"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f4e8d8;">
    <h1 style="color: #6b5742; text-align: center;">{{.}}</h1>
    <div style="background-color: white; padding: 20px; border-radius: 10px; margin: 20px 0;">{{end}}
{{define "close"}}    </div>
  </div>
</body>
</html>{{end}}`

const reservationTemplate = `{{template "open" "Réservation Confirmée"}}
      <p>Bonjour {{.Name}},</p>
      <p>Votre réservation au <strong>Mikombo Park</strong> a été confirmée !</p>
      <h3 style="color: #8b9a7e;">Détails de votre réservation :</h3>
      <ul>
        <li><strong>Numéro :</strong> {{.ID}}</li>
        <li><strong>Date :</strong> {{.Date}}</li>
        <li><strong>Heure :</strong> {{.Time}}</li>
        <li><strong>Type de visite :</strong> {{.VisitType}}</li>
        <li><strong>Nombre d'adultes :</strong> {{.Adults}}</li>
        <li><strong>Nombre d'enfants :</strong> {{.Children}}</li>
        <li><strong>Prix total :</strong> {{.Total}} USD</li>
      </ul>
      <p style="color: #c17856;">Veuillez arriver au moins 15 minutes avant l'heure de votre visite.</p>
      <p>À bientôt au Mikombo Park !</p>
{{template "close"}}`

const orderTemplate = `{{template "open" "Commande Confirmée"}}
      <p>Bonjour {{.Name}},</p>
      <p>Merci pour votre commande de produits bio du <strong>Mikombo Park</strong> !</p>
      <h3 style="color: #8b9a7e;">Détails de votre commande :</h3>
      <p><strong>Numéro :</strong> {{.ID}}</p>
      <ul>
      {{- range .Lines}}
        <li>{{.Name}} - {{.Quantity}} {{.Unit}} x {{.Price}} USD = {{.Subtotal}} USD</li>
      {{- end}}
      </ul>
      <p style="font-size: 18px; font-weight: bold;"><strong>Total :</strong> {{.Total}} USD</p>
      <p><strong>Mode de retrait :</strong> {{.PickupMode}}</p>
      {{- if .Address}}
      <p><strong>Adresse de livraison :</strong> {{.Address}}</p>
      {{- end}}
      <p style="color: #c17856;">Nous vous contacterons dès que votre commande sera prête.</p>
{{template "close"}}`

var (
	reservationTmpl = template.Must(template.Must(template.New("layout").Parse(layoutTemplate)).New("reservation").Parse(reservationTemplate))
	orderTmpl       = template.Must(template.Must(template.New("layout").Parse(layoutTemplate)).New("order").Parse(orderTemplate))
)

type reservationData struct {
	Name      string
	ID        string
	Date      string
	Time      string
	VisitType string
	Adults    int
	Children  int
	Total     string
}

type orderLine struct {
	Name     string
	Quantity string
	Unit     string
	Price    string
	Subtotal string
}

type orderData struct {
	Name       string
	ID         string
	Lines      []orderLine
	Total      string
	PickupMode string
	Address    string
}

func amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func BuildReservationEmail(r models.Reservation) (Message, error) {
	data := reservationData{
		Name:      r.Name,
		ID:        r.ID,
		Date:      r.VisitDate,
		Time:      r.VisitTime,
		VisitType: r.VisitType,
		Adults:    r.Adults,
		Children:  r.Children,
		Total:     amount(r.TotalPrice),
	}
	var buf bytes.Buffer
	if err := reservationTmpl.ExecuteTemplate(&buf, "reservation", data); err != nil {
		return Message{}, err
	}
	return Message{ToEmail: r.Email, ToName: r.Name, Subject: reservationSubject, HTML: buf.String(), Tag: "reservation"}, nil
}

func BuildOrderEmail(o models.Order) (Message, error) {
	data := orderData{
		Name:       o.Name,
		ID:         o.ID,
		Lines:      make([]orderLine, 0, len(o.Items)),
		Total:      amount(o.Total),
		PickupMode: o.PickupMode,
		Address:    o.DeliveryAddress,
	}
	for _, item := range o.Items {
		price := decimal.NewFromFloat(item.Price)
		qty := decimal.NewFromFloat(item.Quantity)
		data.Lines = append(data.Lines, orderLine{
			Name:     item.Name,
			Quantity: qty.String(),
			Unit:     item.Unit,
			Price:    price.StringFixed(2),
			Subtotal: price.Mul(qty).StringFixed(2),
		})
	}
	var buf bytes.Buffer
	if err := orderTmpl.ExecuteTemplate(&buf, "order", data); err != nil {
		return Message{}, err
	}
	return Message{ToEmail: o.Email, ToName: o.Name, Subject: orderSubject, HTML: buf.String(), Tag: "commande"}, nil
}
