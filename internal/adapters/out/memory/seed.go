// internal/adapters/out/memory/seed.go
package memory

import (
	"encoding/json"
	"fmt"
	"os"

	productdom "qkart/internal/domain/product"
)

// LoadProductsFile reads a JSON array of products, as served by GET /v1/products.
func LoadProductsFile(path string) ([]productdom.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("memory: read products seed: %w", err)
	}

	var ps []productdom.Product
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, fmt.Errorf("memory: decode products seed %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(ps))
	for i, p := range ps {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("memory: product #%d in %s: %w", i, path, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("memory: duplicate product id %q in %s", p.ID, path)
		}
		seen[p.ID] = struct{}{}
	}
	return ps, nil
}
