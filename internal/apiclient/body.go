package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"catalog-admin/internal/media"
)

// Body encodes a request payload and reports its Content-Type.
type Body interface {
	Encode() (io.Reader, string, error)
}

type jsonBody struct {
	v any
}

// JSON encodes v as application/json.
func JSON(v any) Body {
	return jsonBody{v: v}
}

func (b jsonBody) Encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal json body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	name string
	file media.File
}

// Form is a multipart/form-data payload: one part per scalar field and
// one part per file, repeating the field name for multiple files.
type Form struct {
	fields []formField
	files  []formFile
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

func (f *Form) File(name string, file media.File) *Form {
	f.files = append(f.files, formFile{name: name, file: file})
	return f
}

func (f *Form) Files(name string, files []media.File) *Form {
	for _, file := range files {
		f.File(name, file)
	}
	return f
}

// Values groups the scalar fields by name.
func (f *Form) Values() map[string][]string {
	out := make(map[string][]string, len(f.fields))
	for _, fld := range f.fields {
		out[fld.name] = append(out[fld.name], fld.value)
	}
	return out
}

func (f *Form) FileCount() int {
	return len(f.files)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", fld.name, err)
		}
	}

	for _, ff := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(ff.name), quoteEscaper.Replace(ff.file.Name)))
		contentType := ff.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part %s: %w", ff.name, err)
		}
		if _, err := part.Write(ff.file.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write part %s: %w", ff.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
