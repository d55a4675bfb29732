package report

type GetBranchSummaryResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Branches []BranchSummary `json:"branches"`
}
