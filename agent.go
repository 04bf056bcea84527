package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// AgentInfo reports the identity and chain head of the local agent as the
// host sees them.
func AgentInfo() (entities.AgentInfo, error) {
	out, err := dispatch.CallTyped[entities.AgentInfoInput, entities.AgentInfoOutput](
		wireformat.TagAgentInfo,
		entities.AgentInfoInput{},
	)
	if err != nil {
		return entities.AgentInfo{}, err
	}
	return out.Info, nil
}
