// internal/adapters/out/secret/secret_manager.go
package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

var errNotConfigured = errors.New("secret: secret manager client not configured")

// Accessor is the subset of *secretmanager.Client used here.
type Accessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Resolver reads secret payloads from Secret Manager.
type Resolver struct {
	sm        Accessor
	projectID string
}

func NewResolver(sm Accessor, projectID string) *Resolver {
	return &Resolver{sm: sm, projectID: strings.TrimSpace(projectID)}
}

// Resolve accepts a full version name (projects/.../versions/...) or a bare
// secret id, which is read at "latest" in the resolver's project.
func (r *Resolver) Resolve(ctx context.Context, secret string) (string, error) {
	if r == nil || r.sm == nil {
		return "", errNotConfigured
	}
	name, err := r.versionName(secret)
	if err != nil {
		return "", err
	}

	resp, err := r.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secret: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("secret: empty payload (%s)", name)
	}

	v := strings.TrimSpace(string(resp.Payload.Data))
	if v == "" {
		return "", fmt.Errorf("secret: blank payload (%s)", name)
	}
	return v, nil
}

func (r *Resolver) versionName(secret string) (string, error) {
	s := strings.TrimSpace(secret)
	if s == "" {
		return "", errors.New("secret: name is empty")
	}
	if strings.HasPrefix(s, "projects/") {
		if !strings.Contains(s, "/versions/") {
			s += "/versions/latest"
		}
		return s, nil
	}
	if r.projectID == "" {
		return "", errors.New("secret: projectID is empty")
	}
	return "projects/" + r.projectID + "/secrets/" + s + "/versions/latest", nil
}
