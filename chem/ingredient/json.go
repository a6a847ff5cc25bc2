package ingredient

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sarchlab/distill/chem"
)

// TypeIonPair is the value of the "type" field of authored salt records.
const TypeIonPair = "ion_pair"

//go:embed ionpair.schema.json
var ionPairSchemaSource string

var ionPairSchema = jsonschema.MustCompileString(
	"ion_pair.schema.json", ionPairSchemaSource)

type ionPairRecord struct {
	Type          string   `json:"type,omitempty"`
	Cation        *string  `json:"cation"`
	Anion         *string  `json:"anion"`
	Concentration *float32 `json:"concentration,omitempty"`
	Amount        *int     `json:"amount,omitempty"`
}

// MarshalJSON writes the authored form of the requirement.
func (p *IonPair) MarshalJSON() ([]byte, error) {
	concentration := p.concentration
	rec := ionPairRecord{
		Type:          TypeIonPair,
		Cation:        &p.cationID,
		Anion:         &p.anionID,
		Concentration: &concentration,
	}

	if p.amount > 0 {
		amount := p.amount
		rec.Amount = &amount
	}

	return json.Marshal(rec)
}

// DecodeJSON reads an authored salt record. The cation and anion must be
// present, known to the registry and correctly charged. The concentration
// defaults to 1 and the amount to DefaultAmount.
func DecodeJSON(data []byte, reg chem.Registry) (*IonPair, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedRecord)
	}

	if _, found := obj["cation"]; !found {
		return nil, ErrMissingIon
	}

	if _, found := obj["anion"]; !found {
		return nil, ErrMissingIon
	}

	if err := ionPairSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	var rec ionPairRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	cation, found := reg.Resolve(*rec.Cation)
	if !found {
		return nil, fmt.Errorf("cation %q: %w", *rec.Cation, ErrUnknownMolecule)
	}

	anion, found := reg.Resolve(*rec.Anion)
	if !found {
		return nil, fmt.Errorf("anion %q: %w", *rec.Anion, ErrUnknownMolecule)
	}

	concentration := float32(1)
	if rec.Concentration != nil {
		concentration = *rec.Concentration
	}

	amount := DefaultAmount
	if rec.Amount != nil {
		amount = *rec.Amount
	}

	return NewIonPair(cation, anion, concentration, amount)
}
