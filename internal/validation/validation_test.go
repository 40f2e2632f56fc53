package validation

import (
	"testing"
	"time"

	"catalog-admin/internal/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brandForm struct {
	Name  string      `json:"name" validate:"min=2"`
	Since string      `json:"since" validate:"year4,realyear"`
	Image *media.File `json:"image" validate:"omitempty,image"`
}

var brandMessages = Messages{
	"name": "Brand name is required",
}

type productForm struct {
	Images    []media.File `json:"image" validate:"min=1,dive,image"`
	Unit      string       `json:"unit" validate:"oneof=Piece Kg Gram Custom"`
	GroupUnit string       `json:"groupUnit" validate:"omitempty,oneof=Box Packet Dozen Custom"`
	Price     string       `json:"retailPrice" validate:"omitempty,numeric"`
}

type contactForm struct {
	Email string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone string `json:"phonenumber" validate:"omitempty,bdphone"`
}

var png = media.File{Name: "logo.png", ContentType: "image/png", Data: []byte{1}}

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC) }
}

func TestValidator_BrandSince(t *testing.T) {
	v := New(WithClock(fixedClock(2026)))

	cases := []struct {
		since string
		want  string
	}{
		{"1976", ""},
		{"2026", ""},
		{"1900", ""},
		{"1899", "Year must be realistic"},
		{"2027", "Year must be realistic"},
		{"ABCD", "Enter a valid year"},
		{"", "Enter a valid year"},
		{"19761", "Enter a valid year"},
	}

	for _, tc := range cases {
		t.Run(tc.since, func(t *testing.T) {
			err := v.Struct(brandForm{Name: "Mi", Since: tc.since}, brandMessages)
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			var errs Errors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tc.want, errs.Field("since"))
		})
	}
}

func TestValidator_Messages(t *testing.T) {
	v := New(WithClock(fixedClock(2026)))

	err := v.Struct(brandForm{Name: "M", Since: "2000"}, brandMessages)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, Errors{"name": "Brand name is required"}, errs)
	assert.Contains(t, errs.Error(), "name: Brand name is required")
}

func TestValidator_Files(t *testing.T) {
	v := Default()

	t.Run("Optional image may be absent", func(t *testing.T) {
		assert.NoError(t, v.Struct(brandForm{Name: "Mi", Since: "2010"}, nil))
	})

	t.Run("Optional image must be an image", func(t *testing.T) {
		pdf := media.File{Name: "a.pdf", ContentType: "application/pdf", Data: []byte{1}}
		err := v.Struct(brandForm{Name: "Mi", Since: "2010", Image: &pdf}, nil)

		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "Only image files are allowed", errs.Field("image"))
	})

	t.Run("At least one image", func(t *testing.T) {
		err := v.Struct(productForm{Unit: "Piece"}, nil)

		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "image must contain at least 1 item(s)", errs.Field("image"))
	})

	t.Run("Every image is checked", func(t *testing.T) {
		txt := media.File{Name: "a.txt", ContentType: "text/plain", Data: []byte{1}}
		err := v.Struct(productForm{Unit: "Piece", Images: []media.File{png, txt}}, nil)

		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.NotEmpty(t, errs)
	})
}

func TestValidator_Enums(t *testing.T) {
	v := Default()
	base := productForm{Images: []media.File{png}, Unit: "Kg"}

	assert.NoError(t, v.Struct(base, nil))

	withGroup := base
	withGroup.GroupUnit = "Dozen"
	assert.NoError(t, v.Struct(withGroup, nil))

	badUnit := base
	badUnit.Unit = "Litre"
	var errs Errors
	require.ErrorAs(t, v.Struct(badUnit, nil), &errs)
	assert.Equal(t, "unit must be one of: Piece, Kg, Gram, Custom", errs.Field("unit"))

	badPrice := base
	badPrice.Price = "12abc"
	require.ErrorAs(t, v.Struct(badPrice, nil), &errs)
	assert.Equal(t, "retailPrice must be a number", errs.Field("retailPrice"))
}

func TestValidator_EmailOrPhone(t *testing.T) {
	v := Default()
	msgs := Messages{"email.required_without": "Either email or phone number is required"}

	assert.NoError(t, v.Struct(contactForm{Email: "a@b.co"}, msgs))
	assert.NoError(t, v.Struct(contactForm{Phone: "01712345678"}, msgs))

	var errs Errors
	require.ErrorAs(t, v.Struct(contactForm{}, msgs), &errs)
	assert.Equal(t, "Either email or phone number is required", errs.Field("email"))

	require.ErrorAs(t, v.Struct(contactForm{Phone: "01212345678"}, msgs), &errs)
	assert.Equal(t, "Enter a valid phone number", errs.Field("phonenumber"))

	require.ErrorAs(t, v.Struct(contactForm{Email: "not-an-email"}, msgs), &errs)
	assert.Equal(t, "Enter a valid email", errs.Field("email"))
}

func TestValidator_NotStruct(t *testing.T) {
	err := Default().Struct("text", nil)
	assert.ErrorIs(t, err, ErrNotStruct)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 0.0, Number(""))
	assert.Equal(t, 0.0, Number("  "))
	assert.Equal(t, 12.5, Number("12.5"))
	assert.Equal(t, 3.0, Number(" 3 "))
}
