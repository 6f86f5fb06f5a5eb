package mail

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
)

// ExtractText reduces a raw MIME message to the plain text fed into
// order extraction: subject line, text body (HTML stripped when no text
// part exists), and the text of any PDF attachment.
func ExtractText(raw []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	sections := make([]string, 0, 3)
	if subject := strings.TrimSpace(env.GetHeader("Subject")); subject != "" {
		sections = append(sections, "Subject: "+subject)
	}

	body := strings.TrimSpace(env.Text)
	if body == "" && env.HTML != "" {
		body = htmlToText(env.HTML)
	}
	if body != "" {
		sections = append(sections, body)
	}

	for _, att := range env.Attachments {
		if !strings.HasSuffix(strings.ToLower(att.FileName), ".pdf") {
			continue
		}
		if text := pdfToText(att.Content); text != "" {
			sections = append(sections, text)
		}
	}

	return strings.Join(sections, "\n\n"), nil
}

func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script,style").Remove()

	var lines []string
	doc.Find("p,li,tr,h1,h2,h3,div").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Filter("p,li,tr,div").Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(lines, "\n")
}

func pdfToText(content []byte) string {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	var out []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return strings.Join(out, "\n")
}
