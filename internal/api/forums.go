package api

import (
	"context"
	"fmt"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

// ListForums fetches the browsable forum index. Pinning happens purely
// client-side; see the storage package.
func (c *Client) ListForums(ctx context.Context) ([]models.Forum, error) {
	var forums []models.Forum
	if err := c.get(ctx, "/forums", &forums); err != nil {
		return nil, fmt.Errorf("listing forums: %w", err)
	}
	return forums, nil
}
