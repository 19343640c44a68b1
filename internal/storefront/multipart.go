package storefront

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/utafrali/storefront/internal/domain"
)

// multipartBody is a form with plain fields and file parts.
type multipartBody struct {
	fields [][2]string
	files  []domain.Upload
}

func (m *multipartBody) field(name, value string) {
	m.fields = append(m.fields, [2]string{name, value})
}

func (m *multipartBody) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", f[0], err)
		}
	}
	for _, up := range m.files {
		part, err := w.CreateFormFile(up.FieldName, up.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", up.FileName, err)
		}
		if _, err := part.Write(up.Data); err != nil {
			return nil, "", fmt.Errorf("write form file %s: %w", up.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
