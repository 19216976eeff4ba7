package automation

import (
	"context"
	"fmt"
)

// Selector is the parameter set of a connection query: either
// ByConnectionName or ByAll.
type Selector interface {
	connectionSelector()
}

// ByConnectionName selects one connection
type ByConnectionName struct {
	Name string
}

// ByAll selects every connection in the account
type ByAll struct{}

func (ByConnectionName) connectionSelector() {}
func (ByAll) connectionSelector()            {}

// GetConnections makes exactly one client call for sel. A single lookup is
// returned as a one-element slice; a listing is returned as is. Client
// errors are returned unchanged.
func GetConnections(ctx context.Context, client ConnectionClient, accountName string, sel Selector) ([]Connection, error) {
	switch s := sel.(type) {
	case ByConnectionName:
		conn, err := client.GetConnection(ctx, accountName, s.Name)
		if err != nil {
			return nil, err
		}
		return []Connection{conn}, nil

	case ByAll:
		return client.ListConnections(ctx, accountName)
	}

	return nil, fmt.Errorf("unsupported connection selector %T", sel)
}
