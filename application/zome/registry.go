package zome

import "sync"

var (
	registryMu sync.Mutex
	registered *ZomeDefinition
)

// register installs the zome definition that exported entry points dispatch
// to. A module hosts exactly one zome; defining a second replaces the first.
func register(z *ZomeDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registered = z
}

// Registered returns the currently installed zome definition, or nil if
// DefineZome has not been called.
func Registered() *ZomeDefinition {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registered
}
