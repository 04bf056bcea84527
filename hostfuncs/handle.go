//go:build !wasip1

package hostfuncs

import (
	"context"
	"crypto/ed25519"
	"log/slog"

	"github.com/zomekit-dev/zome-sdk/application/zome"
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/internal/wasmcontext"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// TrampolineFor binds the conductor to one calling agent. The returned
// trampoline plugs straight into dispatch.Bind, making every capability
// function in the SDK run against this conductor.
func (c *Conductor) TrampolineFor(agent hash.Hash) dispatch.Trampoline {
	return func(tag wireformat.Tag, request []byte) []byte {
		return c.HandleHostCall(agent, tag, request)
	}
}

// HandleHostCall answers one capability call from the given agent and
// returns the encoded response envelope. Unknown tags are echoed back in an
// error envelope, which the dispatcher surfaces as a protocol violation.
func (c *Conductor) HandleHostCall(caller hash.Hash, tag wireformat.Tag, request []byte) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := c.handle(caller, tag, request)
	if err != nil {
		encoded, encErr := wireformat.EncodeErrorResponse(tag, errors.ToErrorDetail(err))
		if encErr != nil {
			return nil
		}
		return encoded
	}

	encoded, err := wireformat.EncodeResponse(tag, payload)
	if err != nil {
		encoded, err = wireformat.EncodeErrorResponse(tag, errors.ToErrorDetail(err))
		if err != nil {
			return nil
		}
	}
	return encoded
}

// handle dispatches on the tag. The switch is closed: adding a tag without
// a handler here falls through to the unknown-tag error.
func (c *Conductor) handle(caller hash.Hash, tag wireformat.Tag, request []byte) (any, error) {
	cl, ok := c.cellFor(caller)
	if !ok {
		return nil, &errors.NotFoundError{What: "cell", Reason: "no cell for calling agent"}
	}

	switch tag {
	case wireformat.TagCreateEntry:
		return c.handleCreateEntry(cl, request)
	case wireformat.TagGetRecord:
		return c.handleGetRecord(request)
	case wireformat.TagGetDetails:
		return c.handleGetDetails(request)
	case wireformat.TagUpdateEntry:
		return c.handleUpdateEntry(cl, request)
	case wireformat.TagDeleteEntry:
		return c.handleDeleteEntry(cl, request)
	case wireformat.TagCreateLink:
		return c.handleCreateLink(cl, request)
	case wireformat.TagDeleteLink:
		return c.handleDeleteLink(cl, request)
	case wireformat.TagGetLinks:
		return c.handleGetLinks(request)
	case wireformat.TagSign:
		return c.handleSign(cl, request)
	case wireformat.TagVerifySignature:
		return c.handleVerifySignature(request)
	case wireformat.TagEmitSignal:
		return c.handleEmitSignal(cl, request)
	case wireformat.TagAgentInfo:
		return c.handleAgentInfo(cl)
	case wireformat.TagCallRemote:
		return c.handleCallRemote(cl, request)
	case wireformat.TagQuery:
		return c.handleQuery(cl, request)
	case wireformat.TagLogMessage:
		return c.handleLogMessage(cl, request)
	case wireformat.TagDnaInfo:
		return c.handleDnaInfo()
	default:
		return nil, &errors.ProtocolViolationError{Reason: "unhandled tag " + tag.String()}
	}
}

func decode[T any](request []byte) (T, error) {
	var in T
	if err := wireformat.Unmarshal(request, &in); err != nil {
		return in, &errors.ValidationError{Reason: "malformed request: " + err.Error()}
	}
	return in, nil
}

func (c *Conductor) handleCreateEntry(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.CreateEntryInput](request)
	if err != nil {
		return nil, err
	}
	if in.Entry.Type == "" {
		return nil, &errors.ValidationError{Field: "entry.type", Reason: "entry type is required"}
	}
	actionHash, err := cl.chain.commitEntry(cl.priv, c.now(), in.Entry)
	if err != nil {
		return nil, err
	}
	return entities.CreateEntryOutput{ActionHash: actionHash}, nil
}

func (c *Conductor) handleGetRecord(request []byte) (any, error) {
	in, err := decode[entities.GetRecordInput](request)
	if err != nil {
		return nil, err
	}
	if !in.Address.IsValid() {
		return nil, &errors.ValidationError{Field: "address", Reason: "address is required"}
	}
	return entities.GetRecordOutput{Record: c.resolveRecord(in.Address)}, nil
}

func (c *Conductor) handleGetDetails(request []byte) (any, error) {
	in, err := decode[entities.GetDetailsInput](request)
	if err != nil {
		return nil, err
	}
	if !in.Address.IsValid() {
		return nil, &errors.ValidationError{Field: "address", Reason: "address is required"}
	}
	return entities.GetDetailsOutput{Details: c.resolveDetails(in.Address)}, nil
}

func (c *Conductor) handleUpdateEntry(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.UpdateEntryInput](request)
	if err != nil {
		return nil, err
	}
	actionHash, err := cl.chain.commitUpdate(cl.priv, c.now(), in.OriginalAction, in.Entry)
	if err != nil {
		return nil, err
	}
	return entities.UpdateEntryOutput{ActionHash: actionHash}, nil
}

func (c *Conductor) handleDeleteEntry(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.DeleteEntryInput](request)
	if err != nil {
		return nil, err
	}
	actionHash, err := cl.chain.commitDelete(cl.priv, c.now(), in.DeletesAction)
	if err != nil {
		return nil, err
	}
	return entities.DeleteEntryOutput{ActionHash: actionHash}, nil
}

func (c *Conductor) handleCreateLink(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.CreateLinkInput](request)
	if err != nil {
		return nil, err
	}
	actionHash, err := cl.chain.commitCreateLink(cl.priv, c.now(), in)
	if err != nil {
		return nil, err
	}
	return entities.CreateLinkOutput{ActionHash: actionHash}, nil
}

func (c *Conductor) handleDeleteLink(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.DeleteLinkInput](request)
	if err != nil {
		return nil, err
	}
	actionHash, err := cl.chain.commitDeleteLink(cl.priv, c.now(), in.LinkAdd)
	if err != nil {
		return nil, err
	}
	return entities.DeleteLinkOutput{ActionHash: actionHash}, nil
}

func (c *Conductor) handleGetLinks(request []byte) (any, error) {
	in, err := decode[entities.GetLinksInput](request)
	if err != nil {
		return nil, err
	}
	if !in.Base.IsValid() {
		return nil, &errors.ValidationError{Field: "base", Reason: "base address is required"}
	}
	return entities.GetLinksOutput{Links: c.liveLinks(in.Base, in.Type)}, nil
}

func (c *Conductor) handleSign(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.SignInput](request)
	if err != nil {
		return nil, err
	}
	return entities.SignOutput{Signature: ed25519.Sign(cl.priv, in.Data)}, nil
}

func (c *Conductor) handleVerifySignature(request []byte) (any, error) {
	in, err := decode[entities.VerifySignatureInput](request)
	if err != nil {
		return nil, err
	}
	signer, ok := c.cellFor(in.Signer)
	if !ok {
		return nil, &errors.NotFoundError{What: "agent", Reason: "unknown signer"}
	}
	valid := len(in.Signature) == ed25519.SignatureSize &&
		ed25519.Verify(signer.pub, in.Data, in.Signature)
	return entities.VerifySignatureOutput{Valid: valid}, nil
}

func (c *Conductor) handleEmitSignal(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.EmitSignalInput](request)
	if err != nil {
		return nil, err
	}
	if in.Signal.Name == "" {
		return nil, &errors.ValidationError{Field: "signal.name", Reason: "signal name is required"}
	}
	c.signals.Push(SignalRecord{
		ID:     c.nextRequestID(),
		From:   cl.agent,
		Signal: in.Signal,
		At:     c.now(),
	})
	return entities.EmitSignalOutput{}, nil
}

func (c *Conductor) handleDnaInfo() (any, error) {
	return entities.DnaInfoOutput{Info: entities.DnaInfo{
		Name:       c.dnaName,
		Properties: c.properties,
	}}, nil
}

func (c *Conductor) handleAgentInfo(cl *cell) (any, error) {
	return entities.AgentInfoOutput{Info: entities.AgentInfo{
		AgentInitialPubkey: cl.agent,
		AgentLatestPubkey:  cl.agent,
		ChainHead:          cl.chain.head,
		ChainLength:        uint32(len(cl.chain.records)),
	}}, nil
}

// handleCallRemote validates the claim, then dispatches into the callee's
// installed zome. The conductor lock is released around the nested
// invocation so the callee's own host calls can re-enter, and the global
// trampoline is rebound to the callee cell for the duration.
func (c *Conductor) handleCallRemote(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.CallRemoteInput](request)
	if err != nil {
		return nil, err
	}

	callee, ok := c.cellFor(in.Target)
	if !ok {
		return nil, &errors.NotFoundError{What: "agent", Reason: "unknown target agent"}
	}
	if verdict := c.validateClaim(callee, cl.agent, in.Zome, in.Function, in.Claim); !verdict.Authorized() {
		return nil, &errors.UnauthorizedError{Outcome: verdict, Reason: "remote call refused"}
	}
	if callee.zomeDef == nil {
		return nil, &errors.NotFoundError{What: "zome", Reason: "target agent has no zome installed"}
	}

	info := wasmcontext.CallInfo{
		ZomeName:     in.Zome,
		FunctionName: in.Function,
		Provenance:   cl.agent,
		RequestID:    c.nextRequestID(),
	}

	// dispatch.Bind swaps a process-global trampoline, mirroring the
	// single-threaded guest the bridge targets. Tests that drive multiple
	// agents must serialize their host calls on one goroutine; concurrent
	// drivers would race on the binding.
	c.mu.Unlock()
	restore := dispatch.Bind(c.TrampolineFor(in.Target))
	encoded := callee.zomeDef.Invoke(info, in.Payload)
	restore()
	c.mu.Lock()

	var result zome.CallResult
	if err := wireformat.Unmarshal(encoded, &result); err != nil {
		return nil, &errors.ProtocolViolationError{Reason: "undecodable zome call result", Err: err}
	}
	if result.Err != nil {
		return nil, errors.FromErrorDetail(result.Err)
	}
	return entities.CallRemoteOutput{Response: result.Payload}, nil
}

func (c *Conductor) handleQuery(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.QueryInput](request)
	if err != nil {
		return nil, err
	}
	return entities.QueryOutput{Records: cl.chain.query(in)}, nil
}

func (c *Conductor) handleLogMessage(cl *cell, request []byte) (any, error) {
	in, err := decode[entities.LogMessageInput](request)
	if err != nil {
		return nil, err
	}
	attrs := make([]any, 0, 2+2*len(in.Attrs))
	attrs = append(attrs, "agent", cl.agent.String())
	for k, v := range in.Attrs {
		attrs = append(attrs, k, v)
	}
	c.logger.Log(context.Background(), parseLevel(in.Level), in.Message, attrs...)
	return entities.LogMessageOutput{}, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
