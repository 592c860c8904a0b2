package vpnconfig

import (
	"fmt"

	"github.com/google/uuid"

	"vpnsub/internal/models"
)

// Generate produces the configuration blob attached to a subscription on
// activation. Placeholder contents until the tunnel provisioner lands; the
// peer id makes each issued config distinct.
func Generate(sub *models.Subscription) string {
	return fmt.Sprintf(`<VPN config for %s>
# Peer: %s
# Expires: %s
# Traffic limit: %.0fGB`,
		sub.VPNUsername,
		uuid.New().String(),
		sub.ExpiresAt.Format("2006-01-02"),
		sub.TrafficLimit,
	)
}
