//go:build !wasip1

package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/hostfuncs"
)

// Executor manages the lifecycle of compiled zome modules. All cells share
// one wazero runtime and one conductor; each instantiated module is bound
// to the agent it runs as.
type Executor struct {
	runtime   wazero.Runtime
	conductor *hostfuncs.Conductor
}

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithConductor backs the executor with an existing conductor. Tests use
// this to pre-seed chains or inspect signals after a run.
func WithConductor(c *hostfuncs.Conductor) Option {
	return func(e *Executor) {
		e.conductor = c
	}
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.conductor == nil {
		e.conductor = hostfuncs.NewConductor()
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostModule(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host module: %w", err)
	}
	return e, nil
}

// Conductor returns the conductor backing this executor.
func (e *Executor) Conductor() *hostfuncs.Conductor {
	return e.conductor
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// InstantiateCell compiles and instantiates a zome module bound to the
// given agent. The agent must already exist on the conductor; the module
// name carries the agent hash so host_call can attribute incoming calls.
func (e *Executor) InstantiateCell(ctx context.Context, wasmBytes []byte, agent hash.Hash) (*CellInstance, error) {
	if !agent.IsValid() || agent.Kind() != hash.KindAgent {
		return nil, fmt.Errorf("instantiate cell: %s is not an agent hash", agent)
	}

	mod, err := e.runtime.InstantiateWithConfig(ctx, wasmBytes,
		wazero.NewModuleConfig().WithName(agent.String()).WithStartFunctions("_initialize"))
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}
	return &CellInstance{module: mod, agent: agent}, nil
}
