// Package domain defines the core types shared by the bot: per-user
// session modes, order records stored in the remote ledger, and the
// persistent session row used by the optional SQLite-backed store.
package domain

import (
	"fmt"
	"time"
)

// Mode identifies the service a user is currently interacting with.
// The values double as the callback tokens carried by the inline menu
// buttons, so they must stay stable across deployments.
type Mode string

const (
	// ModeProductQA relays questions to the product-knowledge chatbot.
	ModeProductQA Mode = "chatbot_product"
	// ModeTicketQA relays questions to the ticket-alignment chatbot.
	ModeTicketQA Mode = "chatbot_ticket"
	// ModeTicket handles order submissions and tracking-number lookups.
	ModeTicket Mode = "ticket_system"
	// ModeNone is the sentinel for a user without an active session.
	ModeNone Mode = ""
)

// Valid reports whether m is one of the three selectable modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeProductQA, ModeTicketQA, ModeTicket:
		return true
	}
	return false
}

// StatusPacking is the fixed shipment status assigned to every new order.
const StatusPacking = "Sedang dikemas"

// Order is a single row of the remote order ledger. Orders are
// append-only: this system never mutates or deletes a row once written.
//
// Fields:
//   - Seq: ledger row count at write time; also the numeric part of OrderID.
//   - OrderID: "ORD-<Seq>", assigned at submission.
//   - CreatedAt: submission timestamp rendered as "2006-01-02 15:04:05".
//   - Name / ItemCode / Address / Resi: the four required fields parsed
//     from the user's submission message.
//   - Status: shipment status; starts as StatusPacking.
//   - ChatID: opaque identifier of the submitting user.
type Order struct {
	Seq       int
	OrderID   string
	CreatedAt string
	Name      string
	ItemCode  string
	Address   string
	Resi      string
	Status    string
	ChatID    string
}

// NewOrderID renders the ledger-derived order identifier for seq.
func NewOrderID(seq int) string { return fmt.Sprintf("ORD-%d", seq) }

// SessionRecord is the GORM model backing the optional persistent
// session store. One row per user; the row is deleted on /stop.
type SessionRecord struct {
	UserID    string    `json:"user_id" gorm:"type:varchar(64);primaryKey"`
	Mode      string    `json:"mode"    gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for SessionRecord.
func (SessionRecord) TableName() string { return "sessions" }
