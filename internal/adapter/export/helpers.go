package export

import (
	"time"

	"github.com/iho/splitledger/internal/domain"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}
