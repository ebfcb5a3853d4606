// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// ClientWrapper wraps the Firestore client and its project.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// ClientOptions returns the credentials option when a file is configured.
// An empty file means Application Default Credentials.
func ClientOptions(credentialsFile string) []option.ClientOption {
	if f := strings.TrimSpace(credentialsFile); f != "" {
		return []option.ClientOption{option.WithCredentialsFile(f)}
	}
	return nil
}

// NewClient initializes the Firestore client.
func NewClient(ctx context.Context, projectID, credentialsFile string, log zerolog.Logger) (*ClientWrapper, error) {
	client, err := firestore.NewClient(ctx, projectID, ClientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	log.Info().Str("component", "firestore").Str("project", projectID).Msg("firestore connected")
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Close is safe on a nil wrapper.
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
