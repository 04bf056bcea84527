package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// EmitSignal publishes a named payload to clients listening on this cell.
// Emission is fire-and-forget: a nil error means the host accepted the
// signal, not that anyone received it.
func EmitSignal(name string, payload []byte) error {
	if name == "" {
		return &errors.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return dispatch.Notify(wireformat.TagEmitSignal, entities.EmitSignalInput{
		Signal: entities.Signal{Name: name, Payload: payload},
	})
}
