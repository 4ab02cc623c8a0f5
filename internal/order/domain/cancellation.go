package domain

// CancellationReason is one merchant-initiated cancellation code accepted by
// the marketplace.
type CancellationReason struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// cancellationReasons is the merchant-initiated code block.
var cancellationReasons = []CancellationReason{
	{Code: 501, Description: "Systemic issues on the restaurant side"},
	{Code: 502, Description: "Duplicate order"},
	{Code: 503, Description: "Item unavailable"},
	{Code: 504, Description: "No delivery workers available"},
	{Code: 505, Description: "Outdated menu"},
	{Code: 506, Description: "Order outside the delivery area"},
	{Code: 507, Description: "Blocked customer"},
	{Code: 508, Description: "Outside business hours"},
	{Code: 509, Description: "Internal difficulties in the restaurant"},
	{Code: 510, Description: "Risky delivery area"},
}

// CancellationReasons returns the accepted merchant cancellation codes.
func CancellationReasons() []CancellationReason {
	reasons := make([]CancellationReason, len(cancellationReasons))
	copy(reasons, cancellationReasons)
	return reasons
}

// CancellationReasonByCode resolves a cancellation code to its description.
func CancellationReasonByCode(code int) (CancellationReason, bool) {
	for _, reason := range cancellationReasons {
		if reason.Code == code {
			return reason, true
		}
	}
	return CancellationReason{}, false
}
