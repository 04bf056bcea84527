package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate caches compiled struct rules; validator.New is too expensive to
// run per call.
var validate = validator.New()

// ParseProperties decodes the properties map from DnaInfo into a struct
// with validation tags and runs the validator over the result. The map goes
// through JSON so field names and omitempty behave the way zome authors
// annotate them.
func ParseProperties(props Properties, targetStruct interface{}) error {
	jsonBytes, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to marshal properties map: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, targetStruct); err != nil {
		return fmt.Errorf("failed to unmarshal properties into struct: %w", err)
	}

	if err := validate.Struct(targetStruct); err != nil {
		return fmt.Errorf("properties validation failed: %w", err)
	}

	return nil
}
