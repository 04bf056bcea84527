//go:build !wasip1

package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/zomekit-dev/zome-sdk/application/zome"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// registerHostModule instantiates the zome_host module with the single
// host_call trampoline. The calling module's name carries the agent hash,
// which is how one shared host function serves many cells.
func (e *Executor) registerHostModule(ctx context.Context) error {
	_, err := e.runtime.NewHostModuleBuilder("zome_host").
		NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, tag uint32, packed uint64) uint64 {
			agent, err := hash.Parse(m.Name())
			if err != nil {
				return 0
			}

			ptr := uint32(packed >> 32)
			length := uint32(packed)
			var request []byte
			if length > 0 {
				data, ok := m.Memory().Read(ptr, length)
				if !ok {
					return 0
				}
				request = make([]byte, length)
				copy(request, data)
			}

			resp := e.conductor.HandleHostCall(agent, wireformat.Tag(tag), request)
			if resp == nil {
				return 0
			}
			return writeGuest(ctx, m, resp)
		}).
		Export("host_call").
		Instantiate(ctx)
	return err
}

// writeGuest allocates guest memory through the module's exported allocator
// and copies data in, returning the packed pointer and length.
func writeGuest(ctx context.Context, m api.Module, data []byte) uint64 {
	allocate := m.ExportedFunction("allocate")
	if allocate == nil {
		return 0
	}
	results, err := allocate.Call(ctx, uint64(len(data)))
	if err != nil || len(results) == 0 {
		return 0
	}
	ptr := uint32(results[0])
	if !m.Memory().Write(ptr, data) {
		return 0
	}
	return uint64(ptr)<<32 | uint64(len(data))
}

// CellInstance is one instantiated zome module running as one agent.
type CellInstance struct {
	module api.Module
	agent  hash.Hash
}

// Agent returns the agent this cell runs as.
func (p *CellInstance) Agent() hash.Hash { return p.agent }

// Manifest calls the zome_manifest export.
func (p *CellInstance) Manifest(ctx context.Context) (*zome.Manifest, error) {
	f := p.module.ExportedFunction("zome_manifest")
	if f == nil {
		return nil, fmt.Errorf("module does not export zome_manifest")
	}
	results, err := f.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("zome_manifest trapped: %w", err)
	}
	if len(results) == 0 || results[0] == 0 {
		return nil, fmt.Errorf("zome_manifest returned no data")
	}

	data, err := p.readPacked(ctx, results[0])
	if err != nil {
		return nil, err
	}
	var manifest zome.Manifest
	if err := wireformat.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("undecodable manifest: %w", err)
	}
	return &manifest, nil
}

// CallFunction invokes a zome function through the zome_call export and
// returns the function's encoded return value. Errors the zome reported
// come back as the matching typed guest error.
func (p *CellInstance) CallFunction(ctx context.Context, inv zome.Invocation) ([]byte, error) {
	f := p.module.ExportedFunction("zome_call")
	if f == nil {
		return nil, fmt.Errorf("module does not export zome_call")
	}

	encoded, err := wireformat.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("encode invocation: %w", err)
	}
	packed := writeGuest(ctx, p.module, encoded)
	if packed == 0 {
		return nil, fmt.Errorf("failed to write invocation into guest memory")
	}

	results, err := f.Call(ctx, packed>>32, packed&0xFFFFFFFF)
	if err != nil {
		return nil, fmt.Errorf("zome_call trapped: %w", err)
	}
	if len(results) == 0 || results[0] == 0 {
		return nil, fmt.Errorf("zome_call returned no data")
	}

	data, err := p.readPacked(ctx, results[0])
	if err != nil {
		return nil, err
	}
	var result zome.CallResult
	if err := wireformat.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("undecodable call result: %w", err)
	}
	if result.Err != nil {
		return nil, errors.FromErrorDetail(result.Err)
	}
	return result.Payload, nil
}

// readPacked copies a packed pointer/length result out of guest memory,
// then releases the guest allocation through the deallocate export. The
// guest pins every buffer it returns; without this call pinned memory
// accumulates across invocations until the guest allocator hits its limit.
func (p *CellInstance) readPacked(ctx context.Context, packed uint64) ([]byte, error) {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if ptr == 0 || length == 0 {
		return nil, fmt.Errorf("null response from module")
	}
	data, ok := p.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("failed to read response from guest memory")
	}
	out := make([]byte, length)
	copy(out, data)

	if deallocate := p.module.ExportedFunction("deallocate"); deallocate != nil {
		if _, err := deallocate.Call(ctx, uint64(ptr), uint64(length)); err != nil {
			return nil, fmt.Errorf("deallocate guest response: %w", err)
		}
	}
	return out, nil
}
