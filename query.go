package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// QueryFilter selects records from the local source chain.
type QueryFilter = entities.QueryInput

// Query returns the local chain records matching the filter, in chain
// order. This reads only the agent's own chain; it never touches the
// network.
func Query(filter QueryFilter) ([]Record, error) {
	out, err := dispatch.CallTyped[entities.QueryInput, entities.QueryOutput](
		wireformat.TagQuery,
		filter,
	)
	if err != nil {
		return nil, err
	}
	return out.Records, nil
}
