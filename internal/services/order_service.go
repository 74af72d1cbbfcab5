// Package services – OrderService
//
// This file implements the order workflow available in ticket mode:
// tracking-number lookup against the remote ledger and validated order
// submission. Every failure path is fully contained here: the caller
// always receives user-facing reply text, never an error.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rdwinata/lapakbot/internal/audit"
	"github.com/rdwinata/lapakbot/internal/domain"
)

// lookupPrefix triggers a tracking-number lookup; matched
// case-insensitively against the start of the message.
const lookupPrefix = "cari "

// Ledger defines the order-table contract required by OrderService.
// Implementations wrap the remote tabular store.
type Ledger interface {
	// AppendOrder appends o as a new row of the order table.
	AppendOrder(ctx context.Context, o domain.Order) error

	// ListOrders returns every existing order row, mapped by the
	// table's header columns.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// RowCount returns the current number of raw rows in the order
	// table, including the header row.
	RowCount(ctx context.Context) (int, error)
}

// OrderService implements submissions and lookups over a Ledger.
//
// Note on identifiers: the next sequence number is the ledger's current
// row count at write time. Two submissions racing between RowCount and
// AppendOrder can receive colliding order ids; the backing store offers
// no reservation primitive, so this is a documented limitation rather
// than something the service tries to fix.
type OrderService struct {
	Ledger Ledger
	Audit  audit.Sink

	// Now is the clock used for order timestamps; tests override it.
	Now func() time.Time
}

// NewOrderService constructs an OrderService over the given ledger and
// audit sink.
func NewOrderService(l Ledger, sink audit.Sink) *OrderService {
	if sink == nil {
		sink = audit.NopSink{}
	}
	return &OrderService{Ledger: l, Audit: sink, Now: time.Now}
}

// Handle routes a ticket-mode message to lookup, submission, or the
// fixed help reply. chatID identifies the sender and becomes the owner
// of any created order.
func (s *OrderService) Handle(ctx context.Context, chatID, text string) string {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "Handle",
		trace.WithAttributes(attribute.String("chat.id", chatID)),
	)
	defer span.End()

	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, lookupPrefix):
		return s.Lookup(ctx, strings.TrimSpace(text[len(lookupPrefix):]))
	case strings.Contains(lower, "nama:") && strings.Contains(lower, "kode barang:"):
		return s.Submit(ctx, chatID, text)
	default:
		return ReplyTicketHelp
	}
}

// Lookup scans the ledger for the first order whose tracking number
// equals resi (case-insensitive) and renders its summary. A missing
// match, an empty query, and a ledger failure each map to their fixed
// reply.
func (s *OrderService) Lookup(ctx context.Context, resi string) string {
	if resi == "" {
		return ReplyInvalidSearch
	}

	found, err := s.find(ctx, resi)
	if err == ErrOrderNotFound {
		return fmt.Sprintf("Resi <b>%s</b> tidak ditemukan.", resi)
	}
	if err != nil {
		log.Error().Err(err).Str("resi", resi).Msg("resi lookup failed")
		s.Audit.Write(ctx, fmt.Sprintf("resi lookup %q failed: %v", resi, err))
		return fmt.Sprintf("Terjadi kesalahan saat mencari resi %s.", resi)
	}

	return fmt.Sprintf(
		"Info Resi <b>%s</b>\n\n"+
			"ID Order: %s\n"+
			"Tanggal Order: %s\n"+
			"Nama: %s\n"+
			"Kode Barang: %s\n"+
			"Alamat: %s\n"+
			"Status Pengiriman: <b>%s</b>",
		resi,
		orNA(found.OrderID),
		orNA(formatOrderDate(found.CreatedAt)),
		orNA(found.Name),
		orNA(found.ItemCode),
		orNA(found.Address),
		orNA(found.Status),
	)
}

// find returns the first ledger order matching resi case-insensitively.
func (s *OrderService) find(ctx context.Context, resi string) (*domain.Order, error) {
	orders, err := s.Ledger.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if strings.EqualFold(orders[i].Resi, resi) {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// Submit parses text as an order submission and appends it to the
// ledger. Parse failures return the fixed validation reply without
// touching the ledger; storage failures are logged, audited, and
// rendered as the generic save failure.
func (s *OrderService) Submit(ctx context.Context, chatID, text string) string {
	parsed, err := ParseOrder(text)
	if err != nil {
		return ReplyIncompleteOrder
	}

	seq, err := s.Ledger.RowCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("order row count failed")
		s.Audit.Write(ctx, fmt.Sprintf("order row count failed: %v", err))
		return ReplySaveFailed
	}

	o := domain.Order{
		Seq:       seq,
		OrderID:   domain.NewOrderID(seq),
		CreatedAt: s.Now().Format("2006-01-02 15:04:05"),
		Name:      parsed.Name,
		ItemCode:  parsed.ItemCode,
		Address:   parsed.Address,
		Resi:      parsed.Resi,
		Status:    domain.StatusPacking,
		ChatID:    chatID,
	}
	if err := s.Ledger.AppendOrder(ctx, o); err != nil {
		log.Error().Err(err).Str("order_id", o.OrderID).Msg("order append failed")
		s.Audit.Write(ctx, fmt.Sprintf("order append %s failed: %v", o.OrderID, err))
		return ReplySaveFailed
	}

	return fmt.Sprintf("Data berhasil disimpan dengan ID Order <b>%s</b>", o.OrderID)
}

// formatOrderDate re-renders a stored "YYYY-MM-DD[ time]" date as
// "DD Mon YYYY"; anything that does not parse passes through unchanged.
func formatOrderDate(raw string) string {
	datePart, _, _ := strings.Cut(raw, " ")
	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return raw
	}
	return t.Format("02 Jan 2006")
}

// orNA substitutes the display placeholder for empty ledger cells.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
