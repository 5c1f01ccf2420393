package mail

import (
	"bytes"
	_ "embed"
	"html/template"
)

type ContactMailParams struct {
	Name      string
	Phone     string
	Timestamp string
}

// contactMailView carries the pre-built tel: link so html/template does not
// reject the non-http scheme.
type contactMailView struct {
	Name      string
	Phone     string
	Timestamp string
	PhoneHref template.URL
}

var (
	contactTemplate = template.New("contact")

	//go:embed templates/contact.html
	contactTemplateRaw string
)

func init() {
	if _, err := contactTemplate.Parse(contactTemplateRaw); err != nil {
		panic(err)
	}
}

func render(t *template.Template, p any) (string, error) {
	b := bytes.Buffer{}
	err := t.Execute(&b, p)
	return b.String(), err
}

func RenderContact(p ContactMailParams) (string, error) {
	return render(contactTemplate, contactMailView{
		Name:      p.Name,
		Phone:     p.Phone,
		Timestamp: p.Timestamp,
		PhoneHref: template.URL("tel:" + p.Phone),
	})
}
