package domain

import (
	"sort"
	"strings"
)

const (
	FieldBairro = "bairro"
	FieldRua    = "rua"
)

type DeliveryAddress struct {
	Bairro          string
	Rua             string
	Numero          string
	PontoReferencia string
}

// Normalize trims surrounding whitespace from every field.
func (a DeliveryAddress) Normalize() DeliveryAddress {
	return DeliveryAddress{
		Bairro:          strings.TrimSpace(a.Bairro),
		Rua:             strings.TrimSpace(a.Rua),
		Numero:          strings.TrimSpace(a.Numero),
		PontoReferencia: strings.TrimSpace(a.PontoReferencia),
	}
}

// Validate reports every missing required field at once so each can be shown
// next to its input.
func (a DeliveryAddress) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(a.Bairro) == "" {
		fields[FieldBairro] = "Bairro é obrigatório"
	}
	if strings.TrimSpace(a.Rua) == "" {
		fields[FieldRua] = "Rua é obrigatória"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e.Fields[k])
	}
	return "invalid delivery address: " + strings.Join(msgs, "; ")
}
