package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// DnaInfo reports the DNA the calling cell runs, including the properties
// its installer configured. Decode the properties into a typed struct with
// ParseProperties, or read individual keys with the config package.
func DnaInfo() (entities.DnaInfo, error) {
	out, err := dispatch.CallTyped[entities.DnaInfoInput, entities.DnaInfoOutput](
		wireformat.TagDnaInfo,
		entities.DnaInfoInput{},
	)
	if err != nil {
		return entities.DnaInfo{}, err
	}
	return out.Info, nil
}
