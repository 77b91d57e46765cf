package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var SupportedCurrencies = []string{"USD", "EUR", "GBP"}

func IsSupportedCurrency(currency string) bool {
	upper := strings.ToUpper(strings.TrimSpace(currency))
	for _, c := range SupportedCurrencies {
		if c == upper {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"_id"`
	TransactionID string    `gorm:"size:30;unique;index" json:"transaction_id"`
	CustomerName  string    `gorm:"size:100;not null" json:"customerName"`
	Email         string    `gorm:"size:255;not null;index" json:"email"`
	Phone         string    `gorm:"size:30;not null" json:"phone"`
	Description   *string   `gorm:"size:500" json:"description"`
	BookingRef    *string   `gorm:"size:30;index" json:"bookingRef"`
	Amount        float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency      string    `gorm:"size:3;not null" json:"currency"`
	Product       *string   `gorm:"size:100" json:"product"`
	Status        string    `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CheckoutURL    *string `gorm:"size:1024" json:"checkoutUrl"`
	RevolutOrderID *string `gorm:"size:255;index" json:"revolutOrderId"`
	RedirectURL    *string `gorm:"size:1024" json:"redirect_url"`
	RevolutData    JSONB   `gorm:"type:jsonb" json:"revolutData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the human-facing id: OGGOTRIP- + base36 timestamp +
// 4 random base36 characters, uppercase.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == "" {
		timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
		t.TransactionID = fmt.Sprintf("OGGOTRIP-%s%s", timestamp, randomBase36(4))
	}
	return nil
}
