package provider

import (
	"fmt"

	"github.com/driveassist/auth-server/internal/model"
)

// Registry maps provider tags to configured clients. Adding a provider
// means registering one new ProviderClient implementation.
type Registry struct {
	clients map[string]model.ProviderClient
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]model.ProviderClient)}
}

// Register binds a client to a provider tag.
func (r *Registry) Register(tag string, client model.ProviderClient) {
	r.clients[tag] = client
}

// Get resolves the client for a provider tag.
func (r *Registry) Get(tag string) (model.ProviderClient, error) {
	client, ok := r.clients[tag]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", tag)
	}
	return client, nil
}
