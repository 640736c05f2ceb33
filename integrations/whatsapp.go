package integrations

import (
	"net/url"
	"strings"
)

// WhatsApp builds click-to-chat links for one recipient.
type WhatsApp struct {
	Host   string
	Number string
}

// Link returns https://<host>/<number>?text=<message>, with the message
// escaped so every reserved character is percent-encoded.
func (w WhatsApp) Link(message string) string {
	return ChatLink(w.Host, w.Number, message)
}

func ChatLink(host, recipient, message string) string {
	link := "https://" + host + "/" + url.PathEscape(recipient)
	if message == "" {
		return link
	}
	return link + "?text=" + EncodeComponent(message)
}

// EncodeComponent percent-encodes s for use as one query value, writing
// spaces as %20.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
