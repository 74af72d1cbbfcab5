// Package sheets wraps the Google Sheets API as the bot's order ledger.
//
// The spreadsheet carries two worksheets: the order table (columns id,
// id_order, tanggal_order, nama, kode_barang, alamat, resi,
// status_pengiriman, chat_id; appends use that order, reads map by
// header) and a log table (timestamp, message) used as a remote audit
// trail. The ledger is append-mostly: this client never updates or
// deletes a row.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/rdwinata/lapakbot/internal/domain"
)

// logTimeLayout matches the timestamp format historically used in the
// log worksheet.
const logTimeLayout = "2006-01-02 15:04:05"

// Client talks to one spreadsheet holding the order and log worksheets.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	orderSheet    string
	logSheet      string
}

// New builds a Client authenticated with the given service-account
// credentials file. It does not touch the spreadsheet yet; the first
// read or append surfaces connectivity and permission problems.
func New(ctx context.Context, credentialsPath, spreadsheetID, orderSheet, logSheet string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		orderSheet:    orderSheet,
		logSheet:      logSheet,
	}, nil
}

// RowCount returns the number of raw rows currently in the order
// worksheet, including the header row.
func (c *Client) RowCount(ctx context.Context) (int, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.orderSheet).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read order sheet: %w", err)
	}
	return len(resp.Values), nil
}

// ListOrders reads the whole order worksheet and maps each data row to
// a domain.Order by header name, so column reordering in the sheet does
// not break lookups.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.orderSheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read order sheet: %w", err)
	}
	return ordersFromRows(resp.Values), nil
}

// AppendOrder appends o as one row at the bottom of the order worksheet.
func (c *Client) AppendOrder(ctx context.Context, o domain.Order) error {
	row := []interface{}{
		o.Seq, o.OrderID, o.CreatedAt, o.Name, o.ItemCode,
		o.Address, o.Resi, o.Status, o.ChatID,
	}
	return c.appendRow(ctx, c.orderSheet, row)
}

// AppendLog appends (timestamp, msg) to the log worksheet.
func (c *Client) AppendLog(ctx context.Context, at time.Time, msg string) error {
	return c.appendRow(ctx, c.logSheet, []interface{}{at.Format(logTimeLayout), msg})
}

func (c *Client) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheet, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}
	return nil
}

// ordersFromRows maps raw sheet values (header row first) to orders.
// Header matching is case-insensitive; rows shorter than the header are
// padded with empty cells, which render as N/A downstream.
func ordersFromRows(rows [][]interface{}) []domain.Order {
	if len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(cellString(h)))
	}

	orders := make([]domain.Order, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var o domain.Order
		for i, h := range headers {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(cellString(row[i]))
			}
			switch h {
			case "id":
				o.Seq, _ = strconv.Atoi(cell)
			case "id_order":
				o.OrderID = cell
			case "tanggal_order":
				o.CreatedAt = cell
			case "nama":
				o.Name = cell
			case "kode_barang":
				o.ItemCode = cell
			case "alamat":
				o.Address = cell
			case "resi":
				o.Resi = cell
			case "status_pengiriman":
				o.Status = cell
			case "chat_id":
				o.ChatID = cell
			}
		}
		orders = append(orders, o)
	}
	return orders
}

// cellString renders a sheet cell value as text. The API returns
// strings for USER_ENTERED sheets, but numeric cells may arrive as
// float64 when a sheet was edited by hand.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
