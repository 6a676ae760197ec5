package pages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegistration() Registration {
	return Registration{
		Name:         "Ana",
		Surname:      "Souza",
		BirthDate:    "2001-04-12",
		CPF:          "123.456.789-00",
		Email:        "ana@exemplo.com",
		Phone:        "(11) 91234-5678",
		Area:         "Oficinas de Dança",
		Availability: "Noite",
	}
}

func TestRequiredFieldsInFormOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		"inome", "isobrenome", "inascim", "icpf", "iemail", "itel", "iarea", "itemp",
	}, RequiredFields())
}

func TestNewRegistrationTrims(t *testing.T) {
	t.Parallel()

	values := map[string]string{"inome": "  Ana ", "iemail": "\tana@exemplo.com\n"}
	r := NewRegistration(func(id string) string { return values[id] })

	require.Equal(t, "Ana", r.Name)
	require.Equal(t, "ana@exemplo.com", r.Email)
	require.Equal(t, "", r.CPF)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(r *Registration)
		missing []string
		email   bool
	}{
		{name: "valid", mutate: func(*Registration) {}},
		{name: "subdomain", mutate: func(r *Registration) { r.Email = "a.b@c.d.e" }},
		{name: "no domain dot", mutate: func(r *Registration) { r.Email = "ana@exemplo" }, email: true},
		{name: "no at", mutate: func(r *Registration) { r.Email = "ana.exemplo.com" }, email: true},
		{name: "space", mutate: func(r *Registration) { r.Email = "ana souza@exemplo.com" }, email: true},
		{name: "two ats", mutate: func(r *Registration) { r.Email = "a@b@c.com" }, email: true},
		{
			name:    "missing fields",
			mutate:  func(r *Registration) { r.CPF, r.Availability = "", "" },
			missing: []string{"icpf", "itemp"},
		},
		{
			name:    "missing wins over bad email",
			mutate:  func(r *Registration) { r.Name, r.Email = "", "nope" },
			missing: []string{"inome"},
		},
		{
			name:    "empty email is missing",
			mutate:  func(r *Registration) { r.Email = "" },
			missing: []string{"iemail"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validRegistration()
			tt.mutate(&r)
			err := Validate(r)

			switch {
			case tt.missing != nil:
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				require.Equal(t, tt.missing, verr.Fields)
				require.NotErrorIs(t, err, ErrInvalidEmail)
			case tt.email:
				require.ErrorIs(t, err, ErrInvalidEmail)
			default:
				require.NoError(t, err)
			}
		})
	}
}
