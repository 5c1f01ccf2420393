package telegram

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
)

type SuccessMessageParams struct {
	Name      string
	Phone     string
	Timestamp string
}

type ErrorMessageParams struct {
	Kind      string
	Details   string
	Name      string
	Phone     string
	Timestamp string
}

var (
	successTemplate = template.New("success")
	errorTemplate   = template.New("error")

	//go:embed templates/success.html
	successTemplateRaw string
	//go:embed templates/error.html
	errorTemplateRaw string
)

func init() {
	if _, err := successTemplate.Parse(successTemplateRaw); err != nil {
		panic(err)
	}
	if _, err := errorTemplate.Parse(errorTemplateRaw); err != nil {
		panic(err)
	}
}

func render(t *template.Template, p any) (string, error) {
	b := bytes.Buffer{}
	err := t.Execute(&b, p)
	return strings.TrimSpace(b.String()), err
}

func RenderSuccessMessage(p SuccessMessageParams) (string, error) {
	return render(successTemplate, p)
}

func RenderErrorMessage(p ErrorMessageParams) (string, error) {
	return render(errorTemplate, p)
}
