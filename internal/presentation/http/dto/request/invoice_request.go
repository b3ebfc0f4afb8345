package request

// InvoiceQuery represents invoice list query parameters. Dates are 2006-01-02.
type InvoiceQuery struct {
	Search string `form:"search"`
	From   string `form:"from"`
	To     string `form:"to"`
	Page   int    `form:"page"`
}

// DictationRequest configures a practice round.
type DictationRequest struct {
	Type    string `json:"type"`
	Rows    int    `json:"rows"`
	Sums    int    `json:"sums"`
	Seconds int    `json:"seconds"`
}
