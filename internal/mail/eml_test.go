package mail

import (
	"strings"
	"testing"
)

const plainEML = "From: customer@example.com\r\n" +
	"To: orders@example.com\r\n" +
	"Subject: Purchase request\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Please send 3 units of A100 to our warehouse.\r\n"

const htmlEML = "From: customer@example.com\r\n" +
	"Subject: Order\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<html><body><p>Need the following:</p><ul><li>A100 x 3</li><li>B200 x 20</li></ul></body></html>\r\n"

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText([]byte(plainEML))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Subject: Purchase request") {
		t.Fatalf("subject missing: %q", text)
	}
	if !strings.Contains(text, "3 units of A100") {
		t.Fatalf("body missing: %q", text)
	}
}

func TestExtractTextHTMLFallback(t *testing.T) {
	text, err := ExtractText([]byte(htmlEML))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "A100 x 3") || !strings.Contains(text, "B200 x 20") {
		t.Fatalf("list items missing: %q", text)
	}
	if strings.Contains(text, "<li>") {
		t.Fatalf("tags leaked: %q", text)
	}
}
