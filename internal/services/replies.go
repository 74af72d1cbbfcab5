// Package services – user-facing reply text.
//
// Every string the bot sends to a user is defined here, in Indonesian,
// matching the merchant's audience. Replies may carry Telegram HTML
// markup (<b>, <code>); transports are expected to send them with HTML
// parse mode enabled.
package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rdwinata/lapakbot/internal/domain"
)

const (
	// ReplyWelcome introduces the three-option service menu.
	ReplyWelcome = "Selamat datang! Silakan pilih layanan yang Anda butuhkan:"

	// ReplyStopped confirms leaving the current mode.
	ReplyStopped = "Anda telah keluar dari mode saat ini. Kirim /start untuk memulai lagi."

	// ReplyNotInMode is sent when /stop arrives without an active session.
	ReplyNotInMode = "Anda sedang tidak dalam mode apa pun. Kirim /start untuk memulai."

	// ReplyUnknownCommand is the fallback for text outside any mode.
	ReplyUnknownCommand = "Perintah tidak dikenali. Silakan kirim /start untuk melihat menu utama."

	// ReplyQAFallback is used when a chatbot answers 200 with no reply field.
	ReplyQAFallback = "Maaf, chatbot tidak dapat merespons saat ini."

	// ReplyQAError is used for any transport-level chatbot failure.
	ReplyQAError = "⚠ Terjadi kesalahan saat mengakses chatbot."

	// ReplyIncompleteOrder is the validation failure for order submissions.
	ReplyIncompleteOrder = "Format data yang Anda kirim tidak lengkap atau salah. Data tidak dapat disimpan."

	// ReplySaveFailed is the generic storage failure for order submissions.
	ReplySaveFailed = "Data gagal disimpan."

	// ReplyInvalidSearch is sent for "cari" with no tracking number.
	ReplyInvalidSearch = "Format pencarian tidak valid. Gunakan: <code>cari [nomor resi]</code>"

	// ReplyTicketHelp is the fallback for unrecognized ticket-mode input.
	ReplyTicketHelp = "Perintah tidak dikenali dalam mode Tiket.\n\n" +
		"Gunakan format:\n- <code>cari [nomor resi]</code>\n" +
		"- atau kirim data order lengkap.\n\n" +
		"Kirim /stop untuk keluar dari mode ini."

	// ReplySessionError is a generic failure when session state cannot
	// be read or written.
	ReplySessionError = "Terjadi kesalahan. Silakan coba lagi."
)

// modeInstructions maps each selectable mode to the instructional
// message sent right after the user picks it.
var modeInstructions = map[domain.Mode]string{
	domain.ModeProductQA: "Anda sekarang dalam mode <b>Chatbot Product Knowledge</b>.\n\n" +
		"Silakan ajukan pertanyaan Anda. Kirim /stop untuk keluar.",
	domain.ModeTicketQA: "Anda sekarang dalam mode <b>Chatbot Ticket Alignment</b>.\n\n" +
		"Silakan ajukan pertanyaan Anda. Kirim /stop untuk keluar.",
	domain.ModeTicket: "Anda sekarang dalam mode <b>Tiket</b>.\n\n" +
		"Kirim <code>cari [nomor resi]</code> untuk mencari data atau kirim data dengan " +
		"format yang ditentukan. Kirim /stop untuk keluar.",
}

// MenuOption is a single entry of the /start inline menu. Label is the
// button caption; Mode doubles as the button's callback token.
type MenuOption struct {
	Label string
	Mode  domain.Mode
}

// MenuOptions returns the three fixed service options, in display order.
func MenuOptions() []MenuOption {
	return []MenuOption{
		{Label: "1. Chatbot Product Knowledge", Mode: domain.ModeProductQA},
		{Label: "2. Chatbot Ticket Alignment", Mode: domain.ModeTicketQA},
		{Label: "3. Tiket (Input & Cek Resi)", Mode: domain.ModeTicket},
	}
}

// modeTitleCaser renders callback tokens as human-readable labels.
var modeTitleCaser = cases.Title(language.Und)

// ModeTitle renders a mode token for display, e.g. "chatbot_product"
// becomes "Chatbot Product".
func ModeTitle(m domain.Mode) string {
	return modeTitleCaser.String(strings.ReplaceAll(string(m), "_", " "))
}
