package model

// ShipmentStatus of an outgoing package.
type ShipmentStatus string

const (
	ShipmentPending ShipmentStatus = "PENDENTE"
	ShipmentSent    ShipmentStatus = "ENVIADO"
)

// Shipment tracks an online-sale package handed to the carrier. CustomerName is
// free text (online buyers are not necessarily registered customers).
type Shipment struct {
	BaseModel
	CustomerName string         `gorm:"type:varchar(255);not null" json:"customer_name" validate:"required"`
	TrackingCode string         `gorm:"type:varchar(30)" json:"tracking_code"`
	Contents     string         `gorm:"type:varchar(255)" json:"contents"`
	Status       ShipmentStatus `gorm:"type:varchar(10);not null;default:'PENDENTE'" json:"status"`
}
