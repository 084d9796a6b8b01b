package ordering

import (
	"time"

	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
)

// Carrier response values recorded on a successful label confirmation. The
// message text is what the shop's carrier webservice historically returned
// and what downstream consumers expect to see verbatim.
const (
	shipmentResponseCodeOK = 0
	shipmentResponseTextOK = "ok"
	shipmentResponseMsgOK  = "Der Webservice wurde ohne Fehler ausgeführt."
)

// Shipment is the shipping sub-record of an order: the stored label artifact
// name, the carrier response and the tracking number.
type Shipment struct {
	shared.BaseEntity
	OrderID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FileName        string    `gorm:"type:varchar(255);not null"`
	ResponseCode    int       `gorm:"not null;default:0"`
	ResponseText    string    `gorm:"type:varchar(50)"`
	ResponseMessage string    `gorm:"type:varchar(255)"`
	ShipmentNumber  string    `gorm:"type:varchar(100);not null"`
	Deleted         bool      `gorm:"not null;default:false"`
	StatusDate      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "order_shipments"
}

// Confirm records a successful label hand-off: the stored artifact name, the
// fixed ok carrier response and the tracking number. Calling it again
// overwrites the previous confirmation.
func (s *Shipment) Confirm(fileName, trackingNumber string, now time.Time) {
	s.FileName = fileName
	s.ResponseCode = shipmentResponseCodeOK
	s.ResponseText = shipmentResponseTextOK
	s.ResponseMessage = shipmentResponseMsgOK
	s.ShipmentNumber = trackingNumber
	s.Deleted = false
	s.StatusDate = now
	s.UpdatedAt = now
}
