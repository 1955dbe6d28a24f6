package cli

import "github.com/lu-zhengda/macsweep/internal/scanner"

// SafetyBreakdown holds reclaimable bytes grouped by category safety.
type SafetyBreakdown struct {
	Auto    int64 `json:"auto"`
	Confirm int64 `json:"confirm"`
	Total   int64 `json:"total"`
}

func safetySummary(reports []scanner.Report) SafetyBreakdown {
	var sb SafetyBreakdown
	for _, r := range reports {
		switch r.Category.Safety {
		case scanner.Auto:
			sb.Auto += r.Total
		case scanner.Confirm:
			sb.Confirm += r.Total
		}
		sb.Total += r.Total
	}
	return sb
}
