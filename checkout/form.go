package checkout

import (
	"strings"

	"catashop/models"
)

// Agencies is the fixed carrier list customers pick from at checkout.
var Agencies = []string{
	"BlueExpress",
	"Chilexpress",
	"Starken",
	"Varmontt",
	"Correos de Chile",
	"Pullman Cargo",
}

// CustomerForm is the typed checkout form. Every field is required; the
// agency must be one of the fixed carriers. Email, phone and RUT formats are
// deliberately not validated beyond presence.
type CustomerForm struct {
	Name    string `json:"name"`
	RUT     string `json:"rut"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Agency  string `json:"agency"`
}

// FieldError names one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate trims the form in place and returns one error per invalid field.
// An empty slice means the form is valid.
func (f *CustomerForm) Validate() []FieldError {
	f.Name = strings.TrimSpace(f.Name)
	f.RUT = strings.TrimSpace(f.RUT)
	f.Address = strings.TrimSpace(f.Address)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Agency = strings.TrimSpace(f.Agency)

	var errs []FieldError
	required := []struct {
		field, value, message string
	}{
		{"name", f.Name, "El nombre es obligatorio"},
		{"rut", f.RUT, "El RUT es obligatorio"},
		{"address", f.Address, "La dirección es obligatoria"},
		{"email", f.Email, "El correo es obligatorio"},
		{"phone", f.Phone, "El teléfono es obligatorio"},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, FieldError{Field: r.field, Message: r.message})
		}
	}

	if f.Agency == "" {
		errs = append(errs, FieldError{Field: "agency", Message: "La agencia de envío es obligatoria"})
	} else if !validAgency(f.Agency) {
		errs = append(errs, FieldError{Field: "agency", Message: "Agencia de envío desconocida"})
	}

	return errs
}

// Details converts a validated form into the embeddable customer record.
func (f *CustomerForm) Details() *models.CustomerDetails {
	return &models.CustomerDetails{
		Name:    f.Name,
		RUT:     f.RUT,
		Address: f.Address,
		Email:   f.Email,
		Phone:   f.Phone,
		Agency:  f.Agency,
	}
}

func validAgency(agency string) bool {
	for _, a := range Agencies {
		if a == agency {
			return true
		}
	}
	return false
}
